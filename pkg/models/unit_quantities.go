package models

import "central360/pkg/metadata"

// UnitQuantities holds one amount per unit family column.
type UnitQuantities struct {
	Gram   float64 `json:"gram"`
	Kg     float64 `json:"kg"`
	Litre  float64 `json:"litre"`
	Pieces float64 `json:"pieces"`
	Boxes  float64 `json:"boxes"`
}

func (q *UnitQuantities) Add(unit metadata.Unit, amount float64) {
	switch unit {
	case metadata.UnitGram:
		q.Gram += amount
	case metadata.UnitKilogram:
		q.Kg += amount
	case metadata.UnitLitre:
		q.Litre += amount
	case metadata.UnitPieces:
		q.Pieces += amount
	case metadata.UnitBoxes:
		q.Boxes += amount
	}
}

func (q UnitQuantities) IsZero() bool {
	return q == UnitQuantities{}
}
