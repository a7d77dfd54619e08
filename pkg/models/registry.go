package models

import (
	"fmt"
	"strings"
)

// Model identifies a supported Lyngdorf device family member.
type Model int

const (
	MP40 Model = iota
	MP50
	MP60
	TDAI1120
	TDAI2170
	TDAI3400
)

// String returns the canonical lower-case model name, e.g. "mp-60".
func (m Model) String() string {
	if d, ok := descriptors[m]; ok {
		return d.Name
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// Descriptor returns the protocol descriptor for the model. It panics on an
// unknown Model value since those can only come from inside this package.
func (m Model) Descriptor() *Descriptor {
	d, ok := descriptors[m]
	if !ok {
		panic(fmt.Sprintf("models: no descriptor for %d", int(m)))
	}
	return d
}

// All returns every supported model in a stable order.
func All() []Model {
	return []Model{MP40, MP50, MP60, TDAI1120, TDAI2170, TDAI3400}
}

// Lookup resolves a model name to its Model. Matching is case-insensitive
// and tolerates a missing hyphen, so "MP60", "mp-60" and "Mp 60" all resolve
// to MP60.
func Lookup(name string) (Model, error) {
	key := normalise(name)
	for _, m := range All() {
		if normalise(m.Descriptor().Name) == key {
			return m, nil
		}
	}
	return 0, &UnknownModelError{Name: name}
}

func normalise(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

// UnknownModelError is returned by Lookup for a name that does not match any
// supported model.
type UnknownModelError struct {
	Name string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model %q (supported: %s)", e.Name, supportedNames())
}

func supportedNames() string {
	names := make([]string, 0, len(descriptors))
	for _, m := range All() {
		names = append(names, m.Descriptor().Name)
	}
	return strings.Join(names, ", ")
}

// IsUnknownModelError reports whether err is an UnknownModelError.
func IsUnknownModelError(err error) bool {
	_, ok := err.(*UnknownModelError)
	return ok
}
