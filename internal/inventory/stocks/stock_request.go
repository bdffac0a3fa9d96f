package stocks

import (
	"central360/pkg/quantity"
)

// BaselineUpdateRequest is one entry of PUT /overall-stock. Quantities may be numbers or
// strings ("5", "3/4"); a missing or null field counts as omitted.
type BaselineUpdateRequest struct {
	ID             *int `json:"id"`
	ItemID         *int `json:"item_id"`
	NewStockGram   any  `json:"new_stock_gram"`
	NewStockKg     any  `json:"new_stock_kg"`
	NewStockLitre  any  `json:"new_stock_litre"`
	NewStockPieces any  `json:"new_stock_pieces"`
	NewStockBoxes  any  `json:"new_stock_boxes"`
}

func (r BaselineUpdateRequest) toBaselineUpdate() BaselineUpdate {
	field := func(v any) *float64 {
		if v == nil {
			return nil
		}
		value := quantity.FromAny(v)
		return &value
	}

	return BaselineUpdate{
		Gram:   field(r.NewStockGram),
		Kg:     field(r.NewStockKg),
		Litre:  field(r.NewStockLitre),
		Pieces: field(r.NewStockPieces),
		Boxes:  field(r.NewStockBoxes),
	}
}

type BaselineBatchRequest struct {
	Updates []BaselineUpdateRequest `json:"updates" binding:"required"`
}

// ConsumptionRequest is one entry of PUT /daily-stock.
type ConsumptionRequest struct {
	ID            *int   `json:"id"`
	ItemID        *int   `json:"item_id"`
	QuantityTaken any    `json:"quantity_taken"`
	Unit          string `json:"unit"`
	Reason        string `json:"reason"`
}

type ConsumptionBatchRequest struct {
	Updates []ConsumptionRequest `json:"updates" binding:"required"`
}

type OverallStockQuery struct {
	Sector string `form:"sector"`
}

// DailyStockQuery filters consumption events. Date, From and To use YYYY-MM-DD.
type DailyStockQuery struct {
	Sector string `form:"sector"`
	Date   string `form:"date"`
	Month  *int   `form:"month" binding:"omitempty,min=1,max=12"`
	Year   *int   `form:"year" binding:"omitempty,min=1970,max=9999"`
	From   string `form:"from"`
	To     string `form:"to"`
}
