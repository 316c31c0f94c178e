package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Payload is a raw JSON request body. Validation operates on the map form
// so it can tell apart absent, null, and wrong-type values.
type Payload map[string]any

type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeDate   FieldType = "date"
	// TypeRef is a nullable foreign-key field: null or a uuid string.
	TypeRef FieldType = "ref"
)

const (
	ReasonRequired      = "required"
	ReasonInvalidType   = "invalid_type"
	ReasonInvalidFormat = "invalid_format"
)

type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Nullable bool
}

// Descriptor declares one entity kind's writable fields. A single generic
// validator interprets descriptors; entities never carry their own
// validation code.
type Descriptor struct {
	Entity string
	Fields []Field
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Reason)
}

// systemManaged keys are never client-settable; Clean strips them before
// validation and merge.
var systemManaged = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

func Clean(p Payload) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		if systemManaged[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// ValidateCreate checks required presence and value shape for every
// declared field. Absent nullable refs are treated as null.
func (d Descriptor) ValidateCreate(p Payload) *ValidationError {
	var fieldErrs []FieldError
	for _, f := range d.Fields {
		v, present := p[f.Name]
		if !present || v == nil {
			if f.Required {
				fieldErrs = append(fieldErrs, FieldError{Field: f.Name, Reason: ReasonRequired})
			}
			continue
		}
		if reason := checkValue(f, v); reason != "" {
			fieldErrs = append(fieldErrs, FieldError{Field: f.Name, Reason: reason})
		}
	}
	if len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}
	return nil
}

// ValidateUpdate checks only the supplied fields; updates are partial
// merges, so absence means "leave unchanged".
func (d Descriptor) ValidateUpdate(p Payload) *ValidationError {
	var fieldErrs []FieldError
	for _, f := range d.Fields {
		v, present := p[f.Name]
		if !present {
			continue
		}
		if v == nil {
			if f.Required && !f.Nullable {
				fieldErrs = append(fieldErrs, FieldError{Field: f.Name, Reason: ReasonRequired})
			}
			continue
		}
		if reason := checkValue(f, v); reason != "" {
			fieldErrs = append(fieldErrs, FieldError{Field: f.Name, Reason: reason})
		}
	}
	if len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}
	return nil
}

func checkValue(f Field, v any) string {
	switch f.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return ReasonInvalidType
		}
	case TypeInt:
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return ReasonInvalidType
		}
	case TypeDate:
		s, ok := v.(string)
		if !ok {
			return ReasonInvalidFormat
		}
		if _, ok := ParseDate(s); !ok {
			return ReasonInvalidFormat
		}
	case TypeRef:
		s, ok := v.(string)
		if !ok {
			return ReasonInvalidFormat
		}
		if _, err := uuid.Parse(s); err != nil {
			return ReasonInvalidFormat
		}
	}
	return ""
}

// ParseDate accepts the calendar forms clients actually send: a plain
// date or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Decode maps a validated payload onto a typed request struct.
func Decode(p Payload, dest any) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Registry is the immutable set of entity descriptors, built once at
// process start.
type Registry struct {
	descriptors map[string]Descriptor
}

func NewRegistry(descriptors ...Descriptor) *Registry {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Entity] = d
	}
	return &Registry{descriptors: m}
}

func (r *Registry) Get(entity string) (Descriptor, bool) {
	d, ok := r.descriptors[entity]
	return d, ok
}
