package settings

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// storedRecordSchema enforces the persistence invariant: a stored record is
// a plain object mapping string keys to string values.
var storedRecordSchema = map[string]interface{}{
	"type": "object",
	"additionalProperties": map[string]interface{}{
		"type": "string",
	},
}

// ValidateStoredRecord checks a decoded settings blob against the flat
// string-map shape before it is merged over defaults.
func ValidateStoredRecord(record map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(storedRecordSchema)
	documentLoader := gojsonschema.NewGoLoader(record)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			return fmt.Errorf("stored settings record invalid: %s", desc)
		}
	}
	return nil
}

// decodeStoredRecord narrows a raw decoded object into the flat string map,
// rejecting anything that violates the invariant.
func decodeStoredRecord(raw map[string]interface{}) (map[string]string, error) {
	if err := ValidateStoredRecord(raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("stored settings record invalid: key %q is not a string", k)
		}
		out[k] = s
	}
	return out, nil
}
