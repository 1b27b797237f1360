package param

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateParam is returned when a store declares the same name twice.
	ErrDuplicateParam = errors.New("param: duplicate parameter")
	// ErrInvalidRange is returned for a declaration with min > max or an empty name.
	ErrInvalidRange = errors.New("param: invalid declaration")
)

// Spec declares a named parameter and its range.
type Spec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// Store holds a fixed set of named parameters.
type Store struct {
	params map[string]*Param
	order  []string
}

// NewStore builds a store from specs. Declaration order is preserved by Names.
func NewStore(specs ...Spec) (*Store, error) {
	s := &Store{
		params: make(map[string]*Param, len(specs)),
		order:  make([]string, 0, len(specs)),
	}

	for _, spec := range specs {
		if spec.Name == "" || spec.Min > spec.Max {
			return nil, fmt.Errorf("%w: %q [%v, %v]", ErrInvalidRange, spec.Name, spec.Min, spec.Max)
		}

		if _, exists := s.params[spec.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParam, spec.Name)
		}

		s.params[spec.Name] = New(spec.Name, spec.Min, spec.Max, spec.Default)
		s.order = append(s.order, spec.Name)
	}

	return s, nil
}

// MustStore is like NewStore but panics on error.
func MustStore(specs ...Spec) *Store {
	s, err := NewStore(specs...)
	if err != nil {
		panic(err.Error())
	}

	return s
}

// Get returns the named parameter.
func (s *Store) Get(name string) (*Param, bool) {
	p, ok := s.params[name]
	return p, ok
}

// Names returns parameter names in declaration order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)

	return out
}

// RampTo clamps value to the named parameter's range and ramps to it over
// frames frames. It reports false for unknown names.
func (s *Store) RampTo(name string, value float64, frames int) (float64, bool) {
	p, ok := s.params[name]
	if !ok {
		return 0, false
	}

	return p.RampTo(value, frames), true
}

// Reset jumps every parameter back to its default.
func (s *Store) Reset() {
	for _, p := range s.params {
		p.Set(p.def)
	}
}
