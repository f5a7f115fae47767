package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"name":   {"type": "string"},
		"amount": {"type": ["number", "string"]},
		"active": {"type": "boolean"}
	}
}`

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile(testSchema)

	tests := []struct {
		name          string
		document      interface{}
		valid         bool
		invalidFields []string
	}{
		{
			name:     "empty object",
			document: map[string]interface{}{},
			valid:    true,
		},
		{
			name: "all fields well typed",
			document: map[string]interface{}{
				"name":   "lathe",
				"amount": "1250.5",
				"active": true,
			},
			valid: true,
		},
		{
			name: "wrong types",
			document: map[string]interface{}{
				"name":   12.0,
				"active": "yes",
			},
			valid:         false,
			invalidFields: []string{"active", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.ElementsMatch(t, tt.invalidFields, fields)
			assert.Len(t, result.GetErrorMessages(), len(tt.invalidFields))
		})
	}
}

func TestCompile_GoValue(t *testing.T) {
	schema, err := Compile(map[string]interface{}{"type": "object"})
	require.NoError(t, err)

	result, err := schema.Validate([]interface{}{1.0})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`{"type": 12}`) })
}
