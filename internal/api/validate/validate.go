package validate

import (
	"fmt"
	"strings"
)

type Kind int

const (
	String Kind = iota
	Number
)

// Field declares the rules for one body field.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Min      *float64 // numbers: minimum value
	MinLen   int      // strings: minimum length after trimming
	Integer  bool     // numbers: fractional values rejected
	Trim     bool     // strings: surrounding whitespace removed in the output
}

// Schema validates a decoded JSON body. Unknown keys are rejected.
type Schema struct {
	Fields []Field
}

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	msgs := make([]string, len(e))
	for i, ef := range e {
		msgs[i] = ef.Msg
	}
	return strings.Join(msgs, ". ")
}

func (e Errs) Messages() []string {
	msgs := make([]string, len(e))
	for i, ef := range e {
		msgs[i] = ef.Msg
	}
	return msgs
}

func minValue(v float64) *float64 { return &v }

// Validate checks body against the schema and returns the coerced value.
// All violations are collected; validation never stops at the first error.
func (s Schema) Validate(body map[string]any) (map[string]any, Errs) {
	var errs Errs
	out := make(map[string]any, len(body))

	known := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
	}
	for k := range body {
		if _, ok := known[k]; !ok {
			errs = append(errs, ErrField{Field: k, Msg: fmt.Sprintf("%q is not allowed", k)})
		}
	}

	for _, f := range s.Fields {
		raw, present := body[f.Name]
		if !present {
			if f.Required {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q is required", f.Name)})
			}
			continue
		}

		switch f.Kind {
		case String:
			sv, ok := raw.(string)
			if !ok {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q must be a string", f.Name)})
				continue
			}
			if f.Trim {
				sv = strings.TrimSpace(sv)
			}
			if sv == "" {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q is not allowed to be empty", f.Name)})
				continue
			}
			if f.MinLen > 0 && len(sv) < f.MinLen {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q length must be at least %d characters long", f.Name, f.MinLen)})
				continue
			}
			out[f.Name] = sv

		case Number:
			nv, ok := raw.(float64)
			if !ok {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q must be a number", f.Name)})
				continue
			}
			if f.Integer && nv != float64(int64(nv)) {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q must be an integer", f.Name)})
				continue
			}
			if f.Min != nil && nv < *f.Min {
				errs = append(errs, ErrField{Field: f.Name, Msg: fmt.Sprintf("%q must be greater than or equal to %v", f.Name, *f.Min)})
				continue
			}
			out[f.Name] = nv
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// Auth is the request schema for both login and register.
var Auth = Schema{Fields: []Field{
	{Name: "username", Kind: String, Required: true, Trim: true},
	{Name: "password", Kind: String, Required: true, Trim: true, MinLen: 6},
}}

var ProductCreate = Schema{Fields: []Field{
	{Name: "name", Kind: String, Required: true},
	{Name: "price", Kind: Number, Required: true, Min: minValue(1)},
	{Name: "description", Kind: String, Required: true},
	{Name: "category", Kind: String, Required: true},
	{Name: "imageUrl", Kind: String, Required: true},
	{Name: "quantity", Kind: Number, Required: true, Min: minValue(0), Integer: true},
}}

// ProductUpdate mirrors ProductCreate with every field optional.
var ProductUpdate = Schema{Fields: []Field{
	{Name: "name", Kind: String},
	{Name: "price", Kind: Number, Min: minValue(1)},
	{Name: "description", Kind: String},
	{Name: "category", Kind: String},
	{Name: "imageUrl", Kind: String},
	{Name: "quantity", Kind: Number, Min: minValue(0), Integer: true},
}}
