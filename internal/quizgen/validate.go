package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validatePayload checks decoded model output against QuizSchema.
// The schema is compiled once per process.
func validatePayload(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledQuizSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledQuizSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value; round-trip the map
		// literal to get a clean representation.
		defBytes, err := json.Marshal(QuizSchema)
		if err != nil {
			compileErr = err
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://quiz.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
