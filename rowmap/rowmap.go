// Package rowmap turns raw query rows into typed records.
//
// Rows arrive in two transport shapes: bare Go scalars from database/sql
// scans, and tagged {type, value} cells from the libsql HTTP pipeline.
// Map normalizes both against a declared schema so nothing downstream ever
// branches on transport shape or column position.
package rowmap

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// Kind is the semantic type a schema declares for a field.
type Kind int

const (
	Text Kind = iota
	Integer
	Float
	Bool
	Timestamp
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Timestamp:
		return "timestamp"
	}
	return "unknown"
}

type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Schema enumerates the named fields a query is expected to produce.
type Schema []Field

// MappingError means the row did not match the schema. It is always a bug
// in a query or the schema, never something to retry.
type MappingError struct {
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("row mapping failed on field %q: %s", e.Field, e.Reason)
}

// Record holds normalized values keyed by field name. Values are one of
// string, int64, float64, bool, time.Time or nil.
type Record map[string]any

// Map validates raw against the schema and returns a normalized record.
// Fields present in raw but absent from the schema are dropped.
func Map(raw map[string]any, schema Schema) (Record, error) {
	rec := make(Record, len(schema))
	for _, f := range schema {
		v, ok := raw[f.Name]
		if !ok {
			return nil, &MappingError{Field: f.Name, Reason: "required field absent"}
		}
		norm, err := normalize(f, v)
		if err != nil {
			return nil, err
		}
		rec[f.Name] = norm
	}
	return rec, nil
}

// MapAll maps every row in rows against the schema.
func MapAll(rows []map[string]any, schema Schema) ([]Record, error) {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := Map(row, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func normalize(f Field, v any) (any, error) {
	// Tagged {type, value} cells from the remote transport are unwrapped
	// into bare scalars first, then coerced like any other value.
	if env, ok := v.(map[string]any); ok {
		unwrapped, err := unwrapCell(f, env)
		if err != nil {
			return nil, err
		}
		v = unwrapped
	}
	if v == nil {
		if !f.Nullable {
			return nil, &MappingError{Field: f.Name, Reason: "null value for non-nullable field"}
		}
		return nil, nil
	}
	switch f.Kind {
	case Text:
		switch x := v.(type) {
		case string:
			return x, nil
		case []byte:
			return string(x), nil
		}
	case Integer:
		switch x := v.(type) {
		case int64:
			return x, nil
		case int:
			return int64(x), nil
		case int32:
			return int64(x), nil
		case float64:
			return int64(x), nil
		case string:
			n, err := strconv.ParseInt(x, 10, 64)
			if err == nil {
				return n, nil
			}
		}
	case Float:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int64:
			return float64(x), nil
		case int:
			return float64(x), nil
		case int32:
			return float64(x), nil
		case float32:
			return float64(x), nil
		case string:
			n, err := strconv.ParseFloat(x, 64)
			if err == nil {
				return n, nil
			}
		}
	case Bool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case int64:
			return x != 0, nil
		case int:
			return x != 0, nil
		case int32:
			return x != 0, nil
		case float64:
			return x != 0, nil
		case string:
			if n, err := strconv.ParseInt(x, 10, 64); err == nil {
				return n != 0, nil
			}
		}
	case Timestamp:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			if t, err := parseTime(x); err == nil {
				return t, nil
			}
			return nil, &MappingError{Field: f.Name, Reason: fmt.Sprintf("unparseable timestamp %q", x)}
		case []byte:
			if t, err := parseTime(string(x)); err == nil {
				return t, nil
			}
			return nil, &MappingError{Field: f.Name, Reason: fmt.Sprintf("unparseable timestamp %q", x)}
		}
	}
	return nil, &MappingError{
		Field:  f.Name,
		Reason: fmt.Sprintf("expected %s, got %T", f.Kind, v),
	}
}

// unwrapCell decodes one libsql pipeline cell. Integers arrive as decimal
// strings, blobs as base64.
func unwrapCell(f Field, env map[string]any) (any, error) {
	typ, ok := env["type"].(string)
	if !ok {
		return nil, &MappingError{Field: f.Name, Reason: "tagged cell without type"}
	}
	switch typ {
	case "null":
		return nil, nil
	case "text":
		s, ok := env["value"].(string)
		if !ok {
			return nil, &MappingError{Field: f.Name, Reason: "text cell without string value"}
		}
		return s, nil
	case "integer":
		switch x := env["value"].(type) {
		case string:
			n, err := strconv.ParseInt(x, 10, 64)
			if err != nil {
				return nil, &MappingError{Field: f.Name, Reason: fmt.Sprintf("bad integer cell %q", x)}
			}
			return n, nil
		case float64:
			return int64(x), nil
		}
		return nil, &MappingError{Field: f.Name, Reason: "bad integer cell"}
	case "float":
		x, ok := env["value"].(float64)
		if !ok {
			return nil, &MappingError{Field: f.Name, Reason: "float cell without numeric value"}
		}
		return x, nil
	case "blob":
		s, ok := env["value"].(string)
		if !ok {
			return nil, &MappingError{Field: f.Name, Reason: "blob cell without base64 value"}
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, &MappingError{Field: f.Name, Reason: "blob cell with invalid base64"}
		}
		return b, nil
	}
	return nil, &MappingError{Field: f.Name, Reason: fmt.Sprintf("unknown cell type %q", typ)}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
