// Package codec reads and writes automaton descriptions.
//
// Descriptions are accepted as JSON or YAML. Raw documents are checked against an
// embedded JSON Schema before they are decoded into a domain.Description, so that
// missing fields surface as domain.ErrMalformedDescription instead of zero values.
package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/mitchellh/mapstructure"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Format selects the serialisation of a description.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for formats other than JSON and YAML.
var ErrUnsupportedFormat = errors.New("unsupported format")

//go:embed description.schema.json
var schemaDocument []byte

const schemaURL = "description.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaDocument)); err != nil {
		return nil, fmt.Errorf("failed to add description schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the JSON Schema descriptions are validated against.
func Schema() []byte {
	return bytes.Clone(schemaDocument)
}

// FormatFromPath infers the format from a file extension.
// ".yaml" and ".yml" are YAML; everything else (".json", ".dfa") is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON, "dfa":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// DecodeDescription parses and validates a raw document without building the automaton.
func DecodeDescription(data []byte, format Format) (domain.Description, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.Description{}, fmt.Errorf("%w: invalid JSON: %v", domain.ErrMalformedDescription, err)
		}
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return domain.Description{}, fmt.Errorf("%w: invalid YAML: %v", domain.ErrMalformedDescription, err)
		}
		normalised, err := normalise(doc)
		if err != nil {
			return domain.Description{}, fmt.Errorf("%w: %v", domain.ErrMalformedDescription, err)
		}
		raw = normalised
	default:
		return domain.Description{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return domain.Description{}, fmt.Errorf("%w: document is not an object", domain.ErrMalformedDescription)
	}
	return DecodeMap(m)
}

// Decode parses, validates and builds an automaton from a raw document.
func Decode(data []byte, format Format) (*domain.DFA, error) {
	desc, err := DecodeDescription(data, format)
	if err != nil {
		return nil, err
	}
	return domain.New(desc)
}

// DecodeMap validates a generic map (e.g. from a config file) and decodes it into a Description.
func DecodeMap(m map[string]any) (domain.Description, error) {
	schema, err := compiledSchema()
	if err != nil {
		return domain.Description{}, err
	}
	normalised, err := normalise(m)
	if err != nil {
		return domain.Description{}, fmt.Errorf("%w: %v", domain.ErrMalformedDescription, err)
	}
	if err := schema.Validate(normalised); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return domain.Description{}, formatValidationError(verr)
		}
		return domain.Description{}, fmt.Errorf("%w: %v", domain.ErrMalformedDescription, err)
	}

	var desc domain.Description
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &desc,
	})
	if err != nil {
		return domain.Description{}, err
	}
	if err := decoder.Decode(normalised); err != nil {
		return domain.Description{}, fmt.Errorf("%w: %v", domain.ErrMalformedDescription, err)
	}
	return desc, nil
}

// Encode serialises the automaton's description.
func Encode(dfa *domain.DFA, format Format) ([]byte, error) {
	return EncodeDescription(dfa.Description(), format)
}

// EncodeDescription serialises a description.
func EncodeDescription(desc domain.Description, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(desc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(desc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Load reads an automaton from a file, choosing the format from its extension.
func Load(path string) (*domain.DFA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read automaton file: %w", err)
	}
	dfa, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dfa, nil
}

// Save writes an automaton to a file, choosing the format from its extension.
func Save(path string, dfa *domain.DFA) error {
	data, err := Encode(dfa, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write automaton file: %w", err)
	}
	return nil
}

// normalise round-trips a value through JSON so that numbers and maps have the
// shapes the schema validator expects (float64, map[string]any).
func normalise(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func formatValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMalformedDescription, err.Error())
	}
	return fmt.Errorf("%w:\n    - %s", domain.ErrMalformedDescription, strings.Join(messages, "\n    - "))
}
