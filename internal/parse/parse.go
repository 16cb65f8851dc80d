// Package parse holds the lenient value coercions applied to request
// payload fields.
package parse

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var nullTokens = map[string]struct{}{
	"null":    {},
	"none":    {},
	"nullptr": {},
}

// AttemptParseAsBoolean coerces v to a bool when it looks like one.
//
// Integer-like values become n > 0, the strings "true"/"false" (any case)
// become the matching bool. Everything else comes back unchanged so the
// caller can reject it.
func AttemptParseAsBoolean(v any) any {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t > 0
	case int8:
		return t > 0
	case int16:
		return t > 0
	case int32:
		return t > 0
	case int64:
		return t > 0
	case uint:
		return t > 0
	case uint8:
		return t > 0
	case uint16:
		return t > 0
	case uint32:
		return t > 0
	case uint64:
		return t > 0
	case float32:
		return truncPositive(float64(t), v)
	case float64:
		return truncPositive(t, v)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n > 0
		}
		if f, err := t.Float64(); err == nil {
			return truncPositive(f, v)
		}
		return v
	case string:
		if n, ok := parseIntString(t); ok {
			return n
		}
		switch {
		case strings.EqualFold(t, "true"):
			return true
		case strings.EqualFold(t, "false"):
			return false
		}
		return v
	default:
		return v
	}
}

func truncPositive(f float64, orig any) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return orig
	}
	return math.Trunc(f) > 0
}

// parseIntString reports whether s is an integer literal and, if so,
// whether it is positive. Out of range literals still carry a sign.
func parseIntString(s string) (bool, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false, false
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err == nil {
		return n > 0, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return !strings.HasPrefix(trimmed, "-"), true
	}
	return false, false
}

// IsNullString reports whether s spells a null value. The empty string
// counts only when emptyString is set.
func IsNullString(s string, emptyString bool) bool {
	lower := strings.ToLower(s)
	if _, ok := nullTokens[lower]; ok {
		return true
	}
	return emptyString && lower == ""
}
