package schemas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig_Valid(t *testing.T) {
	err := ValidateConfig([]byte(`{"ledger_path": "apps.csv", "llm_provider": "gemini", "port": 8080}`))
	assert.NoError(t, err)
}

func TestValidateConfig_UnknownField(t *testing.T) {
	err := ValidateConfig([]byte(`{"ledger_pth": "apps.csv"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateConfig_WrongType(t *testing.T) {
	err := ValidateConfig([]byte(`{"port": "eighty"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "port")
}

func TestValidateConfig_BadEnum(t *testing.T) {
	err := ValidateConfig([]byte(`{"ledger_backend": "sqlite"}`))
	assert.Error(t, err)
}

func TestValidateConfig_MalformedJSON(t *testing.T) {
	err := ValidateConfig([]byte(`{ not json`))
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestValidateBoards(t *testing.T) {
	doc := map[string]any{
		"boards": []any{
			map[string]any{
				"name":       "example",
				"search_url": "https://jobs.example.com/search?q={keyword}",
				"base_url":   "https://jobs.example.com",
				"item":       "li.job",
				"title":      "h3",
				"link":       "a",
			},
		},
	}
	assert.NoError(t, ValidateBoards(doc))

	missing := map[string]any{
		"boards": []any{map[string]any{"name": "example"}},
	}
	assert.Error(t, ValidateBoards(missing))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["a"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"a": 1}`))
	assert.Error(t, ValidateJSONString(schema, `{}`))
}

func TestValidationError_NamesDocument(t *testing.T) {
	err := ValidateConfig([]byte(`{"port": "eighty"}`))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid config: "))
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
