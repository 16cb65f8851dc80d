package category

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"littlelemon/internal/apperror"
)

// RefKind selects which column a Ref matches against.
type RefKind int

const (
	ByID RefKind = iota
	ByTitle
	BySlug
)

// Ref is one way of naming a category.
type Ref struct {
	Kind  RefKind
	ID    uint
	Value string
}

func IDRef(id uint) Ref { return Ref{Kind: ByID, ID: id} }
func TitleRef(title string) Ref { return Ref{Kind: ByTitle, Value: title} }
func SlugRef(slug string) Ref { return Ref{Kind: BySlug, Value: slug} }

// Lookup is an ordered list of refs tried until one matches. Failure is
// returned when none do.
type Lookup struct {
	Refs    []Ref
	Failure *apperror.Error
}

// ParseLookup turns a decoded category field into a Lookup.
//
// A string is tried as an id (only when it is an integer), then as a
// title, then as a slug. An object uses the first of its id, title or
// slug keys. A bare number is taken as an id.
func ParseLookup(v any) (Lookup, error) {
	switch t := v.(type) {
	case string:
		refs := make([]Ref, 0, 3)
		if id, ok := parseID(t); ok {
			refs = append(refs, IDRef(id))
		}
		refs = append(refs, TitleRef(t), SlugRef(t))
		return Lookup{
			Refs:    refs,
			Failure: apperror.Wrap(ErrInvalidCategory, "Invalid category field: '%s'", t),
		}, nil

	case map[string]any:
		if raw, ok := t["id"]; ok {
			failure := apperror.Wrap(ErrInvalidCategory, "Invalid category id '%v'", raw)
			id, ok := idFromAny(raw)
			if !ok {
				return Lookup{}, failure
			}
			return Lookup{Refs: []Ref{IDRef(id)}, Failure: failure}, nil
		}
		if raw, ok := t["title"]; ok {
			s := fmt.Sprint(raw)
			return Lookup{
				Refs:    []Ref{TitleRef(s)},
				Failure: apperror.Wrap(ErrInvalidCategory, "Invalid category title: '%s'", s),
			}, nil
		}
		if raw, ok := t["slug"]; ok {
			s := fmt.Sprint(raw)
			return Lookup{
				Refs:    []Ref{SlugRef(s)},
				Failure: apperror.Wrap(ErrInvalidCategory, "Invalid category slug: '%s'", s),
			}, nil
		}
		return Lookup{}, apperror.Wrap(ErrInvalidCategory, "Invalid category field(s): '%s'", describe(t))

	case json.Number, float64, int:
		id, ok := idFromAny(t)
		if !ok {
			return Lookup{}, apperror.Wrap(ErrInvalidCategory, "Invalid category data: '%v'", t)
		}
		return Lookup{
			Refs:    []Ref{IDRef(id)},
			Failure: apperror.Wrap(ErrInvalidCategory, "Invalid category id '%v'", t),
		}, nil
	}

	return Lookup{}, apperror.Wrap(ErrInvalidCategory, "Invalid category data: '%v'", v)
}

func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func idFromAny(v any) (uint, bool) {
	switch t := v.(type) {
	case string:
		return parseID(t)
	case json.Number:
		return parseID(t.String())
	case int:
		if t > 0 {
			return uint(t), true
		}
	case float64:
		if t > 0 && t == math.Trunc(t) {
			return uint(t), true
		}
	}
	return 0, false
}

func describe(m map[string]any) string {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprint(m)
	}
	return string(b)
}
