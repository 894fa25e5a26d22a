package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mcq(prompt string) MCQ {
	return MCQ{
		Prompt: prompt,
		Options: map[string]string{
			OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		},
		Answer: OptionA,
	}
}

func TestNormalizePrompt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "What IS Go?", "what is go?"},
		{"collapses whitespace", "what  is\t\tgo?", "what is go?"},
		{"trims", "  what is go?  ", "what is go?"},
		{"newlines collapse", "what\nis\ngo?", "what is go?"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrompt(tt.in))
		})
	}
}

func TestNormalizePrompt_Idempotent(t *testing.T) {
	inputs := []string{"  A  B ", "a b", "MiXeD   Case\tText", ""}
	for _, in := range inputs {
		once := NormalizePrompt(in)
		assert.Equal(t, once, NormalizePrompt(once))
	}
}

func TestMergeSets_FirstOccurrenceWins(t *testing.T) {
	pass1 := QuestionSet{MCQ: []MCQ{mcq("What is Go?"), mcq("What is a channel?")}}
	pass2 := QuestionSet{MCQ: []MCQ{mcq("what  is GO?"), mcq("What is a goroutine?")}}

	merged := MergeSets([]QuestionSet{pass1, pass2}, Counts{MCQ: 10, TF: 10, FIB: 10})

	assert.Len(t, merged.MCQ, 3)
	// Stable order: pass 1 entries first, duplicate from pass 2 dropped.
	assert.Equal(t, "What is Go?", merged.MCQ[0].Prompt)
	assert.Equal(t, "What is a channel?", merged.MCQ[1].Prompt)
	assert.Equal(t, "What is a goroutine?", merged.MCQ[2].Prompt)
}

func TestMergeSets_DropsEmptyPrompts(t *testing.T) {
	pass := QuestionSet{
		MCQ: []MCQ{mcq(""), mcq("   "), mcq("valid")},
		TF:  []TrueFalse{{Prompt: "", Answer: "True"}},
	}

	merged := MergeSets([]QuestionSet{pass}, Counts{MCQ: 10, TF: 10, FIB: 10})

	assert.Len(t, merged.MCQ, 1)
	assert.Empty(t, merged.TF)
}

func TestMergeSets_TrimsToTargets(t *testing.T) {
	var pass QuestionSet
	for i := 0; i < 10; i++ {
		pass.MCQ = append(pass.MCQ, mcq("question "+string(rune('a'+i))))
	}

	merged := MergeSets([]QuestionSet{pass}, Counts{MCQ: 4})

	assert.Len(t, merged.MCQ, 4)
	assert.Equal(t, "question a", merged.MCQ[0].Prompt)
}

func TestMergeSets_IdempotentOnDedupedInput(t *testing.T) {
	pass := QuestionSet{MCQ: []MCQ{mcq("one"), mcq("two"), mcq("three")}}
	targets := Counts{MCQ: 10, TF: 10, FIB: 10}

	once := MergeSets([]QuestionSet{pass}, targets)
	twice := MergeSets([]QuestionSet{once}, targets)

	assert.Equal(t, once, twice)
}

func TestMergeSets_TwoPassesWithOverlap(t *testing.T) {
	// Two passes of 15 MCQ each, 3 prompts textually identical across
	// passes modulo case and spacing: 27 unique, target 30, no padding.
	var pass1, pass2 QuestionSet
	for i := 0; i < 15; i++ {
		pass1.MCQ = append(pass1.MCQ, mcq("pass1 question "+string(rune('a'+i))))
	}
	pass2.MCQ = append(pass2.MCQ,
		mcq("PASS1  question a"),
		mcq("Pass1 Question b"),
		mcq("pass1 question C"),
	)
	for i := 0; i < 12; i++ {
		pass2.MCQ = append(pass2.MCQ, mcq("pass2 question "+string(rune('a'+i))))
	}

	merged := MergeSets([]QuestionSet{pass1, pass2}, Counts{MCQ: 30, TF: 20, FIB: 10})

	assert.Len(t, merged.MCQ, 27)
}

func TestExtendMCQ_ReturnsOnlyNew(t *testing.T) {
	existing := []MCQ{mcq("old one"), mcq("old two")}
	incoming := []MCQ{mcq("OLD  ONE"), mcq("new one"), mcq("old two"), mcq("new two")}

	added := ExtendMCQ(existing, incoming)

	assert.Len(t, added, 2)
	assert.Equal(t, "new one", added[0].Prompt)
	assert.Equal(t, "new two", added[1].Prompt)
}

func TestExtendMCQ_DoesNotMutateExisting(t *testing.T) {
	existing := []MCQ{mcq("old one")}
	_ = ExtendMCQ(existing, []MCQ{mcq("new one")})

	assert.Len(t, existing, 1)
	assert.Equal(t, "old one", existing[0].Prompt)
}

func TestExtendMCQ_DisjointKeys(t *testing.T) {
	existing := []MCQ{mcq("alpha"), mcq("beta")}
	incoming := []MCQ{mcq("alpha"), mcq("gamma"), mcq("gamma"), mcq("")}

	added := ExtendMCQ(existing, incoming)

	existingKeys := map[string]bool{}
	for _, q := range existing {
		existingKeys[NormalizePrompt(q.Prompt)] = true
	}
	for _, q := range added {
		assert.False(t, existingKeys[NormalizePrompt(q.Prompt)],
			"added question %q collides with existing keys", q.Prompt)
	}
	assert.Len(t, added, 1)
}

func TestExtendMCQ_IncrementalScenario(t *testing.T) {
	// First batch adds 20; second batch resubmits 15 of those plus 5
	// new: exactly 5 added, session total 25.
	var first []MCQ
	for i := 0; i < 20; i++ {
		first = append(first, mcq("question "+string(rune('a'+i))))
	}
	accumulated := append([]MCQ(nil), ExtendMCQ(nil, first)...)
	assert.Len(t, accumulated, 20)

	var second []MCQ
	second = append(second, first[:15]...)
	for i := 0; i < 5; i++ {
		second = append(second, mcq("fresh "+string(rune('a'+i))))
	}

	added := ExtendMCQ(accumulated, second)
	accumulated = append(accumulated, added...)

	assert.Len(t, added, 5)
	assert.Len(t, accumulated, 25)
}
