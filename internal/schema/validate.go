package schema

import (
	"fmt"
	"strconv"
)

// ValidationError reports the first place a value departs from its schema.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Validate checks a value produced by json.Unmarshal into an interface{}
// against s. Required members must be present and non-null; optional members
// may be absent or null. Unknown members are ignored.
func Validate(s *Schema, v any) error {
	return validate(s, v, "")
}

func validate(s *Schema, v any, path string) error {
	switch s.Type {
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return typeErr(path, s.Type, v)
		}
		for _, p := range s.Properties {
			child := join(path, p.Name)
			val, present := obj[p.Name]
			if !present || val == nil {
				if s.isRequired(p.Name) {
					return &ValidationError{Path: child, Reason: "required field is missing"}
				}
				continue
			}
			if err := validate(p.Schema, val, child); err != nil {
				return err
			}
		}
	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return typeErr(path, s.Type, v)
		}
		if s.Items == nil {
			return nil
		}
		for i, item := range arr {
			if err := validate(s.Items, item, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case TypeString:
		if _, ok := v.(string); !ok {
			return typeErr(path, s.Type, v)
		}
	case TypeNumber:
		if _, ok := v.(float64); !ok {
			return typeErr(path, s.Type, v)
		}
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func typeErr(path string, want Type, got any) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, kindOf(got))}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
