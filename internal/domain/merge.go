package domain

import "strings"

// NormalizePrompt produces the uniqueness key for deduplication:
// lower-cased, consecutive whitespace collapsed to a single space,
// leading and trailing whitespace trimmed.
func NormalizePrompt(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MergeSets combines pass results in call order, drops questions with
// empty prompts, keeps the first occurrence per normalized prompt, and
// trims each kind to its target. Deterministic for a given input order.
func MergeSets(results []QuestionSet, targets Counts) QuestionSet {
	var merged QuestionSet

	seen := make(map[string]struct{})
	for _, r := range results {
		for _, q := range r.MCQ {
			if accept(seen, q.Prompt) {
				merged.MCQ = append(merged.MCQ, q)
			}
		}
	}

	seen = make(map[string]struct{})
	for _, r := range results {
		for _, q := range r.TF {
			if accept(seen, q.Prompt) {
				merged.TF = append(merged.TF, q)
			}
		}
	}

	seen = make(map[string]struct{})
	for _, r := range results {
		for _, q := range r.FIB {
			if accept(seen, q.Prompt) {
				merged.FIB = append(merged.FIB, q)
			}
		}
	}

	if targets.MCQ >= 0 && len(merged.MCQ) > targets.MCQ {
		merged.MCQ = merged.MCQ[:targets.MCQ]
	}
	if targets.TF >= 0 && len(merged.TF) > targets.TF {
		merged.TF = merged.TF[:targets.TF]
	}
	if targets.FIB >= 0 && len(merged.FIB) > targets.FIB {
		merged.FIB = merged.FIB[:targets.FIB]
	}

	return merged
}

// ExtendMCQ returns the subset of incoming questions whose normalized
// prompts appear neither in existing nor earlier in incoming. existing
// is not modified; the caller appends the returned slice.
func ExtendMCQ(existing []MCQ, incoming []MCQ) []MCQ {
	seen := make(map[string]struct{}, len(existing))
	for _, q := range existing {
		key := NormalizePrompt(q.Prompt)
		if key != "" {
			seen[key] = struct{}{}
		}
	}

	var added []MCQ
	for _, q := range incoming {
		if accept(seen, q.Prompt) {
			added = append(added, q)
		}
	}
	return added
}

// accept records the prompt's normalization key in seen and reports
// whether the question should be kept. Empty prompts are never valid.
func accept(seen map[string]struct{}, prompt string) bool {
	key := NormalizePrompt(prompt)
	if key == "" {
		return false
	}
	if _, dup := seen[key]; dup {
		return false
	}
	seen[key] = struct{}{}
	return true
}
