package models

import "time"

// OverallStock is the per item aggregate: declared baseline and derived remaining stock.
type OverallStock struct {
	ID                   int       `json:"id" db:"id"`
	ItemID               int       `json:"item_id" db:"item_id"`
	NewStockGram         float64   `json:"new_stock_gram" db:"new_stock_gram"`
	NewStockKg           float64   `json:"new_stock_kg" db:"new_stock_kg"`
	NewStockLitre        float64   `json:"new_stock_litre" db:"new_stock_litre"`
	NewStockPieces       float64   `json:"new_stock_pieces" db:"new_stock_pieces"`
	NewStockBoxes        float64   `json:"new_stock_boxes" db:"new_stock_boxes"`
	RemainingStockGram   float64   `json:"remaining_stock_gram" db:"remaining_stock_gram"`
	RemainingStockKg     float64   `json:"remaining_stock_kg" db:"remaining_stock_kg"`
	RemainingStockLitre  float64   `json:"remaining_stock_litre" db:"remaining_stock_litre"`
	RemainingStockPieces float64   `json:"remaining_stock_pieces" db:"remaining_stock_pieces"`
	RemainingStockBoxes  float64   `json:"remaining_stock_boxes" db:"remaining_stock_boxes"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

func (o *OverallStock) Baseline() UnitQuantities {
	return UnitQuantities{
		Gram:   o.NewStockGram,
		Kg:     o.NewStockKg,
		Litre:  o.NewStockLitre,
		Pieces: o.NewStockPieces,
		Boxes:  o.NewStockBoxes,
	}
}

func (o *OverallStock) Remaining() UnitQuantities {
	return UnitQuantities{
		Gram:   o.RemainingStockGram,
		Kg:     o.RemainingStockKg,
		Litre:  o.RemainingStockLitre,
		Pieces: o.RemainingStockPieces,
		Boxes:  o.RemainingStockBoxes,
	}
}

func (o *OverallStock) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ItemID,
		ResourceType: "overall_stock",
	}
}

// FlatOverallStockRecord is an aggregate row joined with its item and sector.
type FlatOverallStockRecord struct {
	OverallStock
	ItemName    string  `db:"item_name"`
	SectorCode  string  `db:"sector_code"`
	SectorName  string  `db:"sector_name"`
	VehicleType *string `db:"vehicle_type"`
	PartNumber  *string `db:"part_number"`
}
