package quantity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindDecimal Kind = iota
	KindFraction
)

// Quantity is a user supplied amount, either a plain decimal ("2.5") or a
// simple fraction ("3/4"). Raw keeps the trimmed input for display.
type Quantity struct {
	Kind    Kind
	Decimal float64
	Num     float64
	Den     float64
	Raw     string
}

// Parse never fails: malformed input yields a zero decimal quantity.
func Parse(raw string) Quantity {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Quantity{Kind: KindDecimal}
	}

	if strings.Count(trimmed, "/") == 1 {
		parts := strings.SplitN(trimmed, "/", 2)
		num, numErr := parseFinite(strings.TrimSpace(parts[0]))
		den, denErr := parseFinite(strings.TrimSpace(parts[1]))
		if numErr == nil && denErr == nil && den != 0 {
			return Quantity{Kind: KindFraction, Num: num, Den: den, Raw: trimmed}
		}
	}

	value, err := parseFinite(trimmed)
	if err != nil {
		return Quantity{Kind: KindDecimal, Raw: trimmed}
	}

	return Quantity{Kind: KindDecimal, Decimal: value, Raw: trimmed}
}

func (q Quantity) Value() float64 {
	if q.Kind == KindFraction {
		return q.Num / q.Den
	}
	return q.Decimal
}

func (q Quantity) IsZero() bool {
	return q.Value() == 0
}

func (q Quantity) String() string {
	if q.Raw != "" {
		return q.Raw
	}
	if q.Kind == KindFraction {
		return strconv.FormatFloat(q.Num, 'f', -1, 64) + "/" + strconv.FormatFloat(q.Den, 'f', -1, 64)
	}
	return strconv.FormatFloat(q.Decimal, 'f', -1, 64)
}

// FromAny accepts whatever a decoded JSON body carries for a quantity field.
func FromAny(v any) float64 {
	return Of(v).Value()
}

// Of converts a decoded JSON value into a Quantity.
func Of(v any) Quantity {
	switch val := v.(type) {
	case nil:
		return Quantity{Kind: KindDecimal}
	case string:
		return Parse(val)
	case *string:
		if val == nil {
			return Quantity{Kind: KindDecimal}
		}
		return Parse(*val)
	case json.Number:
		return Parse(val.String())
	case float64:
		return decimalOf(val)
	case float32:
		return decimalOf(float64(val))
	case int:
		return decimalOf(float64(val))
	case int32:
		return decimalOf(float64(val))
	case int64:
		return decimalOf(float64(val))
	default:
		return Quantity{Kind: KindDecimal}
	}
}

func decimalOf(v float64) Quantity {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{Kind: KindDecimal}
	}
	return Quantity{Kind: KindDecimal, Decimal: v}
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
