package menu

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"littlelemon/internal/apperror"
	"littlelemon/internal/category"
	"littlelemon/internal/parse"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var sanitizer = bluemonday.StrictPolicy()

// fields holds the validated subset of a menu item payload. A nil field
// was not supplied.
type fields struct {
	Title    *string
	Price    *decimal.Decimal
	Featured *bool
	Category *category.Lookup
}

var requiredKeys = []string{"title", "price", "category"}

// validateFull checks a payload that must describe a whole item.
func validateFull(payload map[string]any) (fields, error) {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := payload[key]; !ok {
			missing = append(missing, fmt.Sprintf("Missing data: '%s'.", key))
		}
	}
	if len(missing) > 0 {
		return fields{}, apperror.Wrap(ErrInvalidMenuData, "%s", strings.Join(missing, " "))
	}

	f, err := validatePartial(payload)
	if err != nil {
		return fields{}, err
	}
	if f.Featured == nil {
		no := false
		f.Featured = &no
	}
	return f, nil
}

// validatePartial checks only the keys present in payload.
func validatePartial(payload map[string]any) (fields, error) {
	var f fields

	if raw, ok := payload["price"]; ok {
		price, err := cleanPrice(raw)
		if err != nil {
			return fields{}, err
		}
		f.Price = &price
	}

	if raw, ok := payload["title"]; ok {
		title := sanitize(raw)
		if utf8.RuneCountInString(title) > MaxTitleLength {
			return fields{}, ErrTitleLength
		}
		f.Title = &title
	}

	if raw, ok := payload["featured"]; ok {
		b, isBool := parse.AttemptParseAsBoolean(raw).(bool)
		if !isBool {
			return fields{}, apperror.Wrap(ErrInvalidMenuData, "Invalid featured: expected boolean value.")
		}
		f.Featured = &b
	}

	if raw, ok := payload["category"]; ok {
		lookup, err := category.ParseLookup(raw)
		if err != nil {
			return fields{}, err
		}
		f.Category = &lookup
	}

	return f, nil
}

func cleanPrice(raw any) (decimal.Decimal, error) {
	s := strings.TrimSpace(sanitize(raw))
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperror.Wrap(ErrInvalidMenuData, "Invalid price: '%s' is not a decimal value.", s)
	}
	if price.LessThan(MinPrice) || price.GreaterThan(MaxPrice) {
		return decimal.Decimal{}, ErrPriceRange
	}
	return price.Round(2), nil
}

func sanitize(raw any) string {
	var s string
	switch t := raw.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case nil:
		s = ""
	default:
		s = fmt.Sprint(t)
	}
	return sanitizer.Sanitize(s)
}
