// Package ajson holds the AJson record, the fixed-shape document served by
// the ajson data route.
package ajson

import (
	"encoding/json"
	"strconv"
)

// Field names as they appear on the wire and in storage.
const (
	Key1Field = "key1"
	Key2Field = "key 2"
)

// Default values used when a field is missing or falsy.
const (
	DefaultKey1 = "value 1"
	DefaultKey2 = "value 2"
)

// Record is an AJson record. Records built with Shape always have both
// Key1 and Key2 set.
type Record struct {
	// ID is assigned by the store and is empty until the record is saved.
	ID   string `json:"_id,omitempty"`
	Key1 string `json:"key1"`
	Key2 string `json:"key 2"`
}

// Defaults returns a Record holding only default values.
func Defaults() Record {
	return Record{Key1: DefaultKey1, Key2: DefaultKey2}
}

// Shape builds a Record out of an arbitrary decoded JSON value. Anything
// other than a JSON object is treated as an empty object. Each schema field
// takes the input value when it is present and truthy and the default
// otherwise. Fields outside of the schema are dropped.
func Shape(input interface{}) Record {
	doc, _ := input.(map[string]interface{})

	rec := Defaults()
	if v, ok := Truthy(doc[Key1Field]); ok {
		rec.Key1 = v
	}
	if v, ok := Truthy(doc[Key2Field]); ok {
		rec.Key2 = v
	}
	return rec
}

// Truthy reports whether v is a truthy scalar and returns its string form.
// Non-empty strings, non-zero numbers and true are truthy. Objects, arrays,
// nil and every zero value are not.
func Truthy(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case bool:
		return "true", t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), t != 0
	case int:
		return strconv.Itoa(t), t != 0
	case int64:
		return strconv.FormatInt(t, 10), t != 0
	case json.Number:
		f, err := t.Float64()
		return t.String(), err == nil && f != 0
	default:
		return "", false
	}
}
