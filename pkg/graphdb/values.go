package graphdb

import (
	"fmt"
)

// Int returns the integer stored under key, or nil when it is missing or not
// numeric. The driver hands integers back as int64.
func (r Record) Int(key string) *int {
	switch v := r[key].(type) {
	case int64:
		i := int(v)
		return &i
	case int:
		return &v
	case float64:
		i := int(v)
		return &i
	}
	return nil
}

// Int64 is Int for counters.
func (r Record) Int64(key string) int64 {
	if i := r.Int(key); i != nil {
		return int64(*i)
	}
	return 0
}

// String returns the string stored under key, or nil when it is missing.
func (r Record) String(key string) *string {
	switch v := r[key].(type) {
	case nil:
		return nil
	case string:
		return &v
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// Bool returns the boolean stored under key, false when it is missing.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}
