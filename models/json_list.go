package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONList is a list column persisted as JSON text. Reads are tolerant:
// empty, "null" and malformed input all decode to an empty list.
//
// On the wire the list travels as a JSON string holding the encoded array,
// which is what the admin and public frontends send and expect. Decoding also
// accepts a bare JSON array.
type JSONList[T any] []T

// ParseJSONList decodes raw JSON text into a list, never failing.
func ParseJSONList[T any](raw string) JSONList[T] {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return JSONList[T]{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return JSONList[T]{}
	}
	return JSONList[T](items)
}

// String returns the canonical JSON text of the list. An empty list encodes as "[]".
func (l JSONList[T]) String() string {
	if len(l) == 0 {
		return "[]"
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (l JSONList[T]) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *JSONList[T]) Scan(value interface{}) error {
	if l == nil {
		return fmt.Errorf("models.JSONList: Scan on nil pointer")
	}

	switch v := value.(type) {
	case nil:
		*l = JSONList[T]{}
	case []byte:
		*l = ParseJSONList[T](string(v))
	case string:
		*l = ParseJSONList[T](v)
	default:
		return fmt.Errorf("models.JSONList: unsupported Scan type %T", value)
	}
	return nil
}

// GormDataType keeps the column a plain text column on every dialect.
func (JSONList[T]) GormDataType() string {
	return "text"
}

func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *JSONList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*l = JSONList[T]{}
			return nil
		}
		*l = ParseJSONList[T](raw)
		return nil
	}
	*l = ParseJSONList[T](string(data))
	return nil
}

// Skill is a named skill with a 1-5 star rating.
type Skill struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

const (
	MinSkillRating = 1
	MaxSkillRating = 5
)

// ClampRating forces a rating into the 1-5 star range.
func ClampRating(rating int) int {
	if rating < MinSkillRating {
		return MinSkillRating
	}
	if rating > MaxSkillRating {
		return MaxSkillRating
	}
	return rating
}

type SocialLink struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

type QuickLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
