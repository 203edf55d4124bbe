package dict

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PronounClasses(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "builtin", d.Source())

	assert.True(t, d.IsPersonalPronoun("She"))
	assert.True(t, d.IsPersonalPronoun("its"))
	assert.False(t, d.IsPersonalPronoun("which"))
	assert.True(t, d.IsPronoun("which"))
	assert.False(t, d.IsPronoun("device"))

	assert.Equal(t, model.GenderFemale, d.PronounGender("she"))
	assert.Equal(t, model.GenderMale, d.PronounGender("HIS"))
	assert.Equal(t, model.GenderNeutral, d.PronounGender("it"))
	assert.Equal(t, model.GenderUnknown, d.PronounGender("they"))

	assert.Equal(t, model.NumberSingular, d.PronounNumber("it"))
	assert.Equal(t, model.NumberPlural, d.PronounNumber("they"))
	assert.Equal(t, model.NumberUnknown, d.PronounNumber("you"))

	assert.Equal(t, model.AnimacyAnimate, d.PronounAnimacy("we"))
	assert.Equal(t, model.AnimacyInanimate, d.PronounAnimacy("it"))

	assert.Equal(t, PersonFirst, d.PronounPerson("I"))
	assert.Equal(t, PersonSecond, d.PronounPerson("yourself"))
	assert.Equal(t, PersonThird, d.PronounPerson("them"))
	assert.Equal(t, PersonNone, d.PronounPerson("device"))
}

func TestDefault_NounLists(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	assert.Equal(t, model.GenderFemale, d.NounGender("woman"))
	assert.Equal(t, model.GenderMale, d.NounGender("Father"))
	assert.Equal(t, model.GenderUnknown, d.NounGender("device"))
	assert.Equal(t, model.NumberPlural, d.NounNumber("children"))
	assert.Equal(t, model.AnimacyAnimate, d.NounAnimacy("scientist"))
	assert.Equal(t, model.AnimacyInanimate, d.NounAnimacy("device"))
}

func TestDefault_IsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestParse_AmbiguousWordIsUnknown(t *testing.T) {
	data := []byte(`
pronouns:
  personal: [they]
  male: [they]
  female: [they]
  neutral: [it]
  singular: [it]
  plural: [they]
`)
	d, err := Parse("inline", FormatYAML, data)
	require.NoError(t, err)
	assert.Equal(t, model.GenderUnknown, d.PronounGender("they"))
}

const tomlDictionary = `
[pronouns]
personal = ["he", "she", "it", "they"]
male = ["he"]
female = ["she"]
neutral = ["it"]
singular = ["he", "she", "it"]
plural = ["they"]

[nouns]
female = ["nurse"]
`

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDictionary), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Source())
	assert.Equal(t, model.GenderFemale, d.NounGender("nurse"))
	assert.Equal(t, 4, d.Stats()["pronouns.personal"])
}

func TestParse_DigestFollowsContent(t *testing.T) {
	a, err := Parse("a", FormatTOML, []byte(tomlDictionary))
	require.NoError(t, err)
	b, err := Parse("b", FormatTOML, []byte(tomlDictionary))
	require.NoError(t, err)
	c, err := Parse("a", FormatTOML, []byte(tomlDictionary+"\n# edited\n"))
	require.NoError(t, err)

	assert.Len(t, a.Digest(), 64)
	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), c.Digest())

	builtin, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, builtin.Digest())
}

func TestLoad_EmptyPathUsesBuiltin(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "builtin", d.Source())
}

func TestLoad_ConfigurationErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed yaml", "bad.yaml", "pronouns: [unterminated"},
		{"unknown field", "extra.yaml", "pronouns:\n  personal: [he]\n  bogus: [x]\n"},
		{"missing personal list", "missing.yml", "pronouns:\n  male: [he]\n"},
		{"malformed toml", "bad.toml", "[pronouns\npersonal = 1"},
		{"unsupported extension", "lists.json", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %T", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStatNames_Sorted(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	names := d.StatNames()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
}

func TestPronounPerson_String(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "first", d.PronounPerson("we").String())
	assert.Equal(t, "second", d.PronounPerson("you").String())
	assert.Equal(t, "third", d.PronounPerson("them").String())
	assert.Equal(t, "none", d.PronounPerson("table").String())
}
