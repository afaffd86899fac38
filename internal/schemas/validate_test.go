package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordSchema = `{
	"type": "object",
	"required": ["id", "name", "category"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"category": {"type": "string", "enum": ["technical", "soft"]}
	}
}`

func TestCompile_ValidSchema(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestCompile_BrokenSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": "object", "required": "id"}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken", loadErr.Name)
}

func TestSchema_Validate_ValidDocument(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{"id": "skill:go", "name": "Go", "category": "technical"}`))
	assert.NoError(t, err)
}

func TestSchema_Validate_MissingField(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{"id": "skill:go", "name": "Go"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestSchema_Validate_WrongType(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{"id": 42, "name": "Go", "category": "technical"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestSchema_Validate_BadCategory(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{"id": "skill:x", "name": "X", "category": "hobby"}`))
	require.Error(t, err)
}

func TestSchema_Validate_MalformedJSON(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{ not json }`))
	require.Error(t, err)
}

func TestValidationError_ListsEachField(t *testing.T) {
	s, err := Compile("record", recordSchema)
	require.NoError(t, err)

	err = s.Validate([]byte(`{"category": "technical"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	msg := validationErr.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1.")
}
