package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unit is the discriminator stored with every consumption event.
type Unit string

const (
	UnitGram     Unit = "gram"
	UnitKilogram Unit = "kg"
	UnitLitre    Unit = "Litre"
	UnitPieces   Unit = "pieces"
	UnitBoxes    Unit = "Boxes"
)

var Units = []Unit{UnitGram, UnitKilogram, UnitLitre, UnitPieces, UnitBoxes}

var unitAliases = map[string]Unit{
	"gram":      UnitGram,
	"grams":     UnitGram,
	"g":         UnitGram,
	"kg":        UnitKilogram,
	"kgs":       UnitKilogram,
	"kilogram":  UnitKilogram,
	"kilograms": UnitKilogram,
	"litre":     UnitLitre,
	"litres":    UnitLitre,
	"liter":     UnitLitre,
	"liters":    UnitLitre,
	"l":         UnitLitre,
	"pieces":    UnitPieces,
	"piece":     UnitPieces,
	"pcs":       UnitPieces,
	"boxes":     UnitBoxes,
	"box":       UnitBoxes,
}

func NewUnit(value string) (Unit, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	unit, ok := unitAliases[normalized]
	if !ok {
		return "", fmt.Errorf(
			"invalid unit %q, only valid values are: %s, %s, %s, %s, %s",
			value, UnitGram, UnitKilogram, UnitLitre, UnitPieces, UnitBoxes,
		)
	}

	return unit, nil
}

func (u Unit) IsValid() bool {
	switch u {
	case UnitGram, UnitKilogram, UnitLitre, UnitPieces, UnitBoxes:
		return true
	default:
		return false
	}
}

// IsMass reports whether the unit belongs to the convertible gram/kg/litre family.
func (u Unit) IsMass() bool {
	return u == UnitGram || u == UnitKilogram || u == UnitLitre
}

func (u Unit) String() string {
	return string(u)
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unit must be a string: %w", err)
	}
	unit, err := NewUnit(raw)
	if err != nil {
		return err
	}
	*u = unit
	return nil
}
