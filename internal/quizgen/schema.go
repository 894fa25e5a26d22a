package quizgen

import "encoding/json"

// QuizSchema is the closed structural contract for generated output.
// Every object forbids extra fields so a conforming payload can be
// mapped onto the domain types without surprises.
var QuizSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []any{"mcq", "tf", "fib"},
	"properties": map[string]any{
		"mcq": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"prompt", "options", "answer"},
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string"},
					"options": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"required":             []any{"A", "B", "C", "D"},
						"properties": map[string]any{
							"A": map[string]any{"type": "string"},
							"B": map[string]any{"type": "string"},
							"C": map[string]any{"type": "string"},
							"D": map[string]any{"type": "string"},
						},
					},
					"answer": map[string]any{
						"type": "string",
						"enum": []any{"A", "B", "C", "D"},
					},
				},
			},
		},
		"tf": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"prompt", "answer"},
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string"},
					"answer": map[string]any{
						"type": "string",
						"enum": []any{"True", "False"},
					},
				},
			},
		},
		"fib": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"prompt", "answers"},
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string"},
					"answers": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

// quizSchemaJSON is QuizSchema serialized once for embedding in the
// instruction block. Map keys marshal sorted, so the text is stable.
var quizSchemaJSON = mustMarshalSchema()

func mustMarshalSchema() string {
	b, err := json.MarshalIndent(QuizSchema, "", "  ")
	if err != nil {
		panic("quizgen: marshal quiz schema: " + err.Error())
	}
	return string(b)
}
