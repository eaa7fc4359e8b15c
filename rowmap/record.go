package rowmap

import "time"

// Typed accessors over an already-normalized record. A missing or null
// field yields the zero value; pointer variants yield nil.

func (r Record) String(name string) string {
	s, _ := r[name].(string)
	return s
}

func (r Record) StringPtr(name string) *string {
	if s, ok := r[name].(string); ok {
		return &s
	}
	return nil
}

func (r Record) Int64(name string) int64 {
	n, _ := r[name].(int64)
	return n
}

func (r Record) Float64(name string) float64 {
	f, _ := r[name].(float64)
	return f
}

func (r Record) FloatPtr(name string) *float64 {
	if f, ok := r[name].(float64); ok {
		return &f
	}
	return nil
}

func (r Record) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

func (r Record) Time(name string) time.Time {
	t, _ := r[name].(time.Time)
	return t
}

func (r Record) TimePtr(name string) *time.Time {
	if t, ok := r[name].(time.Time); ok {
		return &t
	}
	return nil
}
