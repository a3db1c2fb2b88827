package levels

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/world.schema.json
var worldSchemaSource string

const worldSchemaURL = "https://github.com/milk9111/worldbuilder/levels/schema/world.schema.json"

// ErrSchema marks documents that do not match the world schema.
var ErrSchema = errors.New("levels: document does not match world schema")

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func worldSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(worldSchemaURL, worldSchemaSource)
	})
	return schema, schemaErr
}

// Validate checks raw JSON against the embedded world schema.
func Validate(data []byte) error {
	s, err := worldSchema()
	if err != nil {
		return fmt.Errorf("levels: compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("levels: parse document: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
