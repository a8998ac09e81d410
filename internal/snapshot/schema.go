package snapshot

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Kind identifies the type of an export document.
type Kind string

const (
	// KindPages is a page export.
	KindPages Kind = "pages"
	// KindNavigation is a navigation export.
	KindNavigation Kind = "navigation"
	// KindLinks is a page link export.
	KindLinks Kind = "links"
)

// Kinds lists every supported document kind.
var Kinds = []Kind{KindPages, KindNavigation, KindLinks}

// ParseKind converts a user supplied kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

//go:embed schemas/*.yaml
var schemaFS embed.FS

// Violation is a single schema violation.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating one document.
type Result struct {
	Kind       Kind        `json:"kind"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

var compiledSchemas = sync.OnceValues(func() (map[Kind]*gojsonschema.Schema, error) {
	schemas := make(map[Kind]*gojsonschema.Schema, len(Kinds))
	for _, k := range Kinds {
		s, err := compileSchema(k)
		if err != nil {
			return nil, err
		}
		schemas[k] = s
	}
	return schemas, nil
})

// compileSchema loads the YAML schema of a kind and compiles it.
// gojsonschema only reads JSON, so the YAML is converted first.
func compileSchema(k Kind) (*gojsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + string(k) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s schema: %w", k, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s schema: %w", k, err)
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s schema: %w", k, err)
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", k, err)
	}
	return s, nil
}

// Validate checks a JSON document against the schema of kind.
// The returned error is only set when validation could not run at all,
// for example because the document is not JSON.
func Validate(kind Kind, data []byte) (*Result, error) {
	schemas, err := compiledSchemas()
	if err != nil {
		return nil, err
	}
	s, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s document: %w", kind, err)
	}

	out := &Result{Kind: kind, Valid: res.Valid()}
	for _, e := range res.Errors() {
		field := e.Field()
		if field == "" || field == gojsonschema.STRING_CONTEXT_ROOT {
			field = "root"
		}
		out.Violations = append(out.Violations, Violation{
			Field:   field,
			Message: e.Description(),
		})
	}
	return out, nil
}

// DetectKind guesses the kind of a JSON document from its top-level shape:
// an array is a link export, an object with "pages" a page export and an
// object with "tree" a navigation export.
func DetectKind(data []byte) (Kind, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return KindLinks, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownKind, err)
	}
	if _, ok := top["pages"]; ok {
		return KindPages, nil
	}
	if _, ok := top["tree"]; ok {
		return KindNavigation, nil
	}
	return "", ErrUnknownKind
}
