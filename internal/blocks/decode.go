package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/logfields"
)

// DecodeOption configures decoding.
type DecodeOption func(*decoder)

// WithLogger sets the logger receiving warnings about skipped entries.
func WithLogger(l *slog.Logger) DecodeOption {
	return func(d *decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

type decoder struct {
	logger *slog.Logger
}

func newDecoder(opts []DecodeOption) *decoder {
	d := &decoder{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads a JSON document holding either a single block object or an
// array of blocks.
func Decode(r io.Reader, opts ...DecodeOption) ([]Block, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read block document").Build()
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid JSON block document").Build()
	}
	return FromValue(doc, opts...)
}

// DecodeYAML reads a YAML document with the same shape Decode accepts.
func DecodeYAML(r io.Reader, opts ...DecodeOption) ([]Block, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid YAML block document").Build()
	}
	return FromValue(doc, opts...)
}

// FromValue converts a generic decoded document (a map or a slice of maps)
// into blocks. Missing fields fall back to their zero values and bare strings
// in children become plain spans. Other malformed entries are skipped with a
// warning; only a document that is neither an object nor an array is rejected.
func FromValue(doc any, opts ...DecodeOption) ([]Block, error) {
	d := newDecoder(opts)
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []Block{d.block(v, "[0]")}, nil
	case []any:
		out := make([]Block, 0, len(v))
		for i, item := range v {
			path := fmt.Sprintf("[%d]", i)
			m, ok := item.(map[string]any)
			if !ok {
				d.skip(path, "block is not an object")
				continue
			}
			out = append(out, d.block(m, path))
		}
		return out, nil
	default:
		return nil, errors.ValidationError("document must be a block object or an array of blocks").Build()
	}
}

func (d *decoder) skip(path, reason string) {
	d.logger.Warn("Skipping malformed entry", logfields.Path(path), slog.String("reason", reason))
}

var blockFields = map[string]bool{
	"_type": true, "_key": true, "style": true, "children": true,
	"markDefs": true, "listItem": true, "level": true,
}

func (d *decoder) block(m map[string]any, path string) Block {
	b := Block{
		Type:      stringField(m, "_type"),
		ID:        stringField(m, "_key"),
		Style:     stringField(m, "style"),
		ListType:  stringField(m, "listItem"),
		ListLevel: intField(m, "level"),
	}
	if b.Type == "" {
		b.Type = TypeBlock
	}

	if children, ok := m["children"].([]any); ok {
		b.Children = make([]Span, 0, len(children))
		for i, c := range children {
			switch cv := c.(type) {
			case map[string]any:
				b.Children = append(b.Children, spanFromMap(cv))
			case string:
				b.Children = append(b.Children, Span{Type: TypeSpan, Text: cv})
			default:
				d.skip(fmt.Sprintf("%s.children[%d]", path, i), "span is neither an object nor text")
			}
		}
	}

	if defs, ok := m["markDefs"].([]any); ok {
		for i, def := range defs {
			dm, ok := def.(map[string]any)
			if !ok {
				d.skip(fmt.Sprintf("%s.markDefs[%d]", path, i), "mark definition is not an object")
				continue
			}
			b.MarkDefs = append(b.MarkDefs, markDefFromMap(dm))
		}
	}

	b.Fields = extraFields(m, blockFields)
	return b
}

var spanFields = map[string]bool{"_type": true, "_key": true, "text": true, "marks": true}

func spanFromMap(m map[string]any) Span {
	s := Span{
		Type: stringField(m, "_type"),
		Key:  stringField(m, "_key"),
		Text: stringField(m, "text"),
	}
	if s.Type == "" {
		s.Type = TypeSpan
	}
	if marks, ok := m["marks"].([]any); ok {
		for _, mk := range marks {
			if id, ok := mk.(string); ok && id != "" {
				s.Marks = append(s.Marks, id)
			}
		}
	}
	s.Fields = extraFields(m, spanFields)
	return s
}

var markDefFields = map[string]bool{"_key": true, "_type": true}

func markDefFromMap(m map[string]any) MarkDef {
	return MarkDef{
		ID:     stringField(m, "_key"),
		Type:   stringField(m, "_type"),
		Fields: extraFields(m, markDefFields),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0
			}
			return int(f)
		}
		return int(n)
	default:
		return 0
	}
}

func extraFields(m map[string]any, known map[string]bool) map[string]any {
	var out map[string]any
	for k, v := range m {
		if known[k] {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeValue turns json.Number into int64/float64 so custom fields look
// the same regardless of the source format.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, vv := range t {
			t[k] = normalizeValue(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = normalizeValue(vv)
		}
		return t
	default:
		return v
	}
}
