package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abdusco/shelf/internal"
	"github.com/samber/lo"
)

// ValidationError reports the first argument that did not match its validator.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return internal.ErrValidation
}

// Validator checks a single decoded JSON value.
type Validator interface {
	Validate(path string, value any) error
	Kind() string
}

type stringValidator struct{}

func String() Validator {
	return stringValidator{}
}

func (stringValidator) Kind() string { return "string" }

func (stringValidator) Validate(path string, value any) error {
	if _, ok := value.(string); !ok {
		return mismatch(path, "string", value)
	}
	return nil
}

type arrayValidator struct {
	elem Validator
}

func Array(elem Validator) Validator {
	return arrayValidator{elem: elem}
}

func (v arrayValidator) Kind() string { return "array<" + v.elem.Kind() + ">" }

func (v arrayValidator) Validate(path string, value any) error {
	var items []any
	switch vals := value.(type) {
	case []any:
		items = vals
	case []string:
		items = lo.ToAnySlice(vals)
	default:
		return mismatch(path, v.Kind(), value)
	}

	for i, item := range items {
		if err := v.elem.Validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
			return err
		}
	}
	return nil
}

type optionalValidator struct {
	inner Validator
}

// Optional marks a field that may be left out. A present value, including
// null, must still satisfy the inner validator.
func Optional(inner Validator) Validator {
	return optionalValidator{inner: inner}
}

func (v optionalValidator) Kind() string { return "optional<" + v.inner.Kind() + ">" }

func (v optionalValidator) Validate(path string, value any) error {
	return v.inner.Validate(path, value)
}

// Object validates an argument map field by field. Undeclared fields are
// rejected.
type Object map[string]Validator

func (o Object) Validate(args map[string]any) error {
	for _, name := range o.fieldNames() {
		validator := o[name]
		value, present := args[name]
		if !present {
			if _, optional := validator.(optionalValidator); optional {
				continue
			}
			return &ValidationError{Message: fmt.Sprintf("missing required field %q", name)}
		}
		if err := validator.Validate(name, value); err != nil {
			return err
		}
	}

	extra := lo.Filter(lo.Keys(args), func(name string, _ int) bool {
		_, declared := o[name]
		return !declared
	})
	if len(extra) > 0 {
		slices.Sort(extra)
		return &ValidationError{Message: fmt.Sprintf("unexpected field %q", extra[0])}
	}

	return nil
}

func (o Object) String() string {
	fields := lo.Map(o.fieldNames(), func(name string, _ int) string {
		return name + ": " + o[name].Kind()
	})
	return "{" + strings.Join(fields, ", ") + "}"
}

func (o Object) fieldNames() []string {
	names := lo.Keys(map[string]Validator(o))
	slices.Sort(names)
	return names
}

func mismatch(path, want string, value any) error {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %s", want, typeName(value)),
	}
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
