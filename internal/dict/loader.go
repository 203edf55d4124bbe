package dict

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed data/english.yaml
var englishYAML []byte

// File is the on-disk layout of a dictionary, shared by the YAML and
// TOML formats
type File struct {
	Pronouns PronounLists `yaml:"pronouns" toml:"pronouns"`
	Nouns    NounLists    `yaml:"nouns" toml:"nouns"`
}

// PronounLists are the pronoun classes
type PronounLists struct {
	Personal     []string `yaml:"personal" toml:"personal"`
	FirstPerson  []string `yaml:"first_person" toml:"first_person"`
	SecondPerson []string `yaml:"second_person" toml:"second_person"`
	ThirdPerson  []string `yaml:"third_person" toml:"third_person"`
	Male         []string `yaml:"male" toml:"male"`
	Female       []string `yaml:"female" toml:"female"`
	Neutral      []string `yaml:"neutral" toml:"neutral"`
	Singular     []string `yaml:"singular" toml:"singular"`
	Plural       []string `yaml:"plural" toml:"plural"`
	Animate      []string `yaml:"animate" toml:"animate"`
	Inanimate    []string `yaml:"inanimate" toml:"inanimate"`
	Other        []string `yaml:"other" toml:"other"`
}

// NounLists are the gendered, animate and irregular-number noun lists
type NounLists struct {
	Male      []string `yaml:"male" toml:"male"`
	Female    []string `yaml:"female" toml:"female"`
	Neutral   []string `yaml:"neutral" toml:"neutral"`
	Animate   []string `yaml:"animate" toml:"animate"`
	Inanimate []string `yaml:"inanimate" toml:"inanimate"`
	Singular  []string `yaml:"singular" toml:"singular"`
	Plural    []string `yaml:"plural" toml:"plural"`
}

var (
	builtinOnce sync.Once
	builtin     *Dictionaries
	builtinErr  error
)

// Default returns the built-in English dictionaries. They are parsed
// once per process.
func Default() (*Dictionaries, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse("builtin", FormatYAML, englishYAML)
	})
	return builtin, builtinErr
}

// Format is a dictionary file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", &ConfigurationError{Source: path, Reason: "unsupported extension (want .yaml, .yml or .toml)"}
}

// Load reads dictionaries from path. An empty path selects the built-in
// lists.
func Load(path string) (*Dictionaries, error) {
	if path == "" {
		return Default()
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Reason: "read file", Err: err}
	}

	return Parse(path, format, data)
}

// Parse decodes and validates dictionary data
func Parse(source string, format Format, data []byte) (*Dictionaries, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, &ConfigurationError{Source: source, Reason: "parse YAML", Err: err}
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, &ConfigurationError{Source: source, Reason: "parse TOML", Err: err}
		}
	default:
		return nil, &ConfigurationError{Source: source, Reason: fmt.Sprintf("unknown format %q", format)}
	}

	if err := validate(source, &f); err != nil {
		return nil, err
	}

	d := fromFile(source, &f)
	sum := sha256.Sum256(data)
	d.digest = hex.EncodeToString(sum[:])
	return d, nil
}

// validate rejects dictionaries missing the lists the resolver cannot
// work without
func validate(source string, f *File) error {
	required := []struct {
		name  string
		words []string
	}{
		{"pronouns.personal", f.Pronouns.Personal},
		{"pronouns.male", f.Pronouns.Male},
		{"pronouns.female", f.Pronouns.Female},
		{"pronouns.neutral", f.Pronouns.Neutral},
		{"pronouns.singular", f.Pronouns.Singular},
		{"pronouns.plural", f.Pronouns.Plural},
	}
	for _, r := range required {
		if len(r.words) == 0 {
			return &ConfigurationError{Source: source, Reason: fmt.Sprintf("missing list %s", r.name)}
		}
	}
	return nil
}
