package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tax := Default()

	assert.Equal(t, []string{"programming", "web", "data", "cloud", "databases", "tools"}, tax.Skills.Names())
	assert.Equal(t, []string{ActionVerbsCategory, "soft_skills"}, tax.ATS.Names())
	assert.Len(t, tax.ATS.Lookup(ActionVerbsCategory), 10)
	assert.Equal(t, 18, tax.ATS.PhraseCount())
	assert.Contains(t, tax.Skills.Lookup("programming"), "python")
	assert.Contains(t, tax.Skills.Lookup("web"), "flask")
	assert.Contains(t, tax.StopwordSet(), "the")
	assert.NotContains(t, tax.StopwordSet(), "python")
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()

	a.Skills[0].Phrases[0] = "changed"
	assert.NotEqual(t, "changed", b.Skills[0].Phrases[0])
}

func TestDefaultJSON_PassesSchema(t *testing.T) {
	_, err := Parse(DefaultJSON())
	assert.NoError(t, err)
}

func TestParse_CleansPhrases(t *testing.T) {
	data := []byte(`{
		"skills": [{"category": " web ", "phrases": [" React ", "react", "vue"]}],
		"ats": [],
		"stopwords": [" The ", ""]
	}`)

	tax, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "web", tax.Skills[0].Name)
	assert.Equal(t, []string{"React", "vue"}, tax.Skills[0].Phrases)
	assert.Contains(t, tax.StopwordSet(), "the")
	assert.Len(t, tax.StopwordSet(), 1)
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`{"skills": "python"}`))
	assert.Error(t, err)
}

func TestParse_NoCategories(t *testing.T) {
	_, err := Parse([]byte(`{"skills": [], "ats": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no categories")
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		tax, err := Load("")
		require.NoError(t, err)
		assert.NotEmpty(t, tax.Skills)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "taxonomy.json")
		content := `{"skills": [{"category": "programming", "phrases": ["python"]}], "ats": [{"category": "action_verbs", "phrases": ["led"]}]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		tax, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"python"}, tax.Skills.Lookup("programming"))
		assert.Empty(t, tax.StopwordSet())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/taxonomy.json")
		require.Error(t, err)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "failed to read taxonomy file")
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{ invalid json }`), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid taxonomy")
	})
}
