package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name", "score"],
	"properties": {
		"name": {"type": "string"},
		"score": {"type": "number", "minimum": 0, "maximum": 100}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "resume", "score": 42.5}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "resume"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": 3, "score": 10}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{ not json`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestEmbeddedSchemas_AreValidJSON(t *testing.T) {
	for name, content := range map[string]string{
		"taxonomy": TaxonomySchema(),
		"report":   ReportSchema(),
	} {
		t.Run(name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(content), &v))
		})
	}
}

func TestValidateTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "minimal taxonomy",
			input: `{"skills": [{"category": "programming", "phrases": ["python"]}], "ats": []}`,
		},
		{
			name:  "with stopwords",
			input: `{"skills": [], "ats": [{"category": "action_verbs", "phrases": ["led"]}], "stopwords": ["the"]}`,
		},
		{
			name:    "missing ats",
			input:   `{"skills": []}`,
			wantErr: true,
		},
		{
			name:    "empty phrase list",
			input:   `{"skills": [{"category": "web", "phrases": []}], "ats": []}`,
			wantErr: true,
		},
		{
			name:    "unknown top-level key",
			input:   `{"skills": [], "ats": [], "extra": true}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaxonomy([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReport(t *testing.T) {
	valid := `{
		"success": true,
		"overall_score": 55.1,
		"tfidf_similarity": 40,
		"keyword_similarity": 45,
		"skill_match": {"matched": {"programming": ["python"]}, "missing": {"programming": []}, "match_percentage": 100},
		"sentiment": {"positive": 0.2, "negative": 0, "neutral": 0.8, "compound": 0.4},
		"ats_keywords": {"action_verbs": ["led"]},
		"ats_compatibility": {"score": 5.56},
		"recommendations": ["Keep it up."]
	}`
	assert.NoError(t, ValidateReport([]byte(valid)))

	assert.NoError(t, ValidateReport([]byte(`{"success": false, "error": "boom"}`)))
	assert.Error(t, ValidateReport([]byte(`{"success": false}`)), "failure must carry a message")
	assert.Error(t, ValidateReport([]byte(`{"success": true, "overall_score": 120}`)))
}
