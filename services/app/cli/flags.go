package cli

import (
	"fmt"
	"strings"
)

// enumValue is a flag restricted to task statuses or priorities.
type enumValue[T ~string] struct {
	p       *T
	allowed []T
	parse   func(string) (T, bool)
}

func newEnumValue[T ~string](p *T, allowed []T, parse func(string) (T, bool)) *enumValue[T] {
	return &enumValue[T]{p: p, allowed: allowed, parse: parse}
}

func (e *enumValue[T]) String() string {
	if e.p == nil {
		return ""
	}
	return string(*e.p)
}

func (e *enumValue[T]) Set(s string) error {
	v, ok := e.parse(s)
	if !ok {
		return fmt.Errorf("must be one of %s", e.choices())
	}
	*e.p = v
	return nil
}

func (e *enumValue[T]) Type() string { return "string" }

func (e *enumValue[T]) choices() string {
	parts := make([]string, len(e.allowed))
	for i, a := range e.allowed {
		parts[i] = fmt.Sprintf("%q", string(a))
	}
	return strings.Join(parts, ", ")
}
