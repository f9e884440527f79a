package token

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed defaults/base.tokens.json
var defaultBase []byte

//go:embed schema/tokens.schema.json
var documentSchema []byte

// DefaultBasePath is the FilePath recorded on tokens from the embedded
// base file.
const DefaultBasePath = "embedded:base.tokens.json"

const schemaURL = "https://tzie.dev/schemas/tokens.schema.json"

// DefaultBase returns the embedded base tokens document.
func DefaultBase() []byte {
	return bytes.Clone(defaultBase)
}

// Loader reads token sources and validates them against the document schema.
type Loader struct {
	schema *jsonschema.Schema
}

// NewLoader compiles the document schema.
func NewLoader() (*Loader, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Loader{schema: schema}, nil
}

// LoadFile reads, validates and parses a token file.
func (l *Loader) LoadFile(path string, src Source) ([]*Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	return l.Load(data, ParseOptions{FilePath: path, Source: src})
}

// LoadDefaultBase parses the embedded base tokens.
func (l *Loader) LoadDefaultBase() ([]*Token, error) {
	return l.Load(defaultBase, ParseOptions{FilePath: DefaultBasePath, Source: SourceBase})
}

// Load validates and parses an in-memory document.
func (l *Loader) Load(data []byte, opts ParseOptions) ([]*Token, error) {
	format := FormatForPath(opts.FilePath)
	doc, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.FilePath, err)
	}
	if err := l.validate(plain(doc)); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.FilePath, err)
	}
	return parseDocument(doc, opts)
}

// ValidateFile checks a token file against the document schema without
// parsing it into tokens.
func (l *Loader) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}
	doc, err := decode(data, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := l.validate(plain(doc)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (l *Loader) validate(doc any) error {
	// The validator wants json.Number for numerics; round-trip through
	// its own decoder to get there.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode for validation: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode for validation: %w", err)
	}
	if err := l.schema.Validate(v); err != nil {
		return fmt.Errorf("invalid token document: %w", err)
	}
	return nil
}
