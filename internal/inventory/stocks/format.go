package stocks

import (
	"time"

	"central360/pkg/metadata"
	"central360/pkg/models"

	"github.com/shopspring/decimal"
)

const (
	convertedPlaces int32 = 2 // kg, litre
	countedPlaces   int32 = 3 // gram, pieces, boxes
)

// formatQuantity rounds to places and drops trailing zeros: 4.750 -> "4.75", 5.00 -> "5".
func formatQuantity(value float64, places int32) string {
	return decimal.NewFromFloat(value).Round(places).String()
}

type OverallStockView struct {
	ID                   int       `json:"id"`
	ItemID               int       `json:"item_id"`
	ItemName             string    `json:"item_name,omitempty"`
	SectorCode           string    `json:"sector_code,omitempty"`
	SectorName           string    `json:"sector_name,omitempty"`
	VehicleType          *string   `json:"vehicle_type,omitempty"`
	PartNumber           *string   `json:"part_number,omitempty"`
	NewStockGram         string    `json:"new_stock_gram"`
	NewStockKg           string    `json:"new_stock_kg"`
	NewStockLitre        string    `json:"new_stock_litre"`
	NewStockPieces       string    `json:"new_stock_pieces"`
	NewStockBoxes        string    `json:"new_stock_boxes"`
	RemainingStockGram   string    `json:"remaining_stock_gram"`
	RemainingStockKg     string    `json:"remaining_stock_kg"`
	RemainingStockLitre  string    `json:"remaining_stock_litre"`
	RemainingStockPieces string    `json:"remaining_stock_pieces"`
	RemainingStockBoxes  string    `json:"remaining_stock_boxes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func NewOverallStockView(stock models.OverallStock) OverallStockView {
	return OverallStockView{
		ID:                   stock.ID,
		ItemID:               stock.ItemID,
		NewStockGram:         formatQuantity(stock.NewStockGram, countedPlaces),
		NewStockKg:           formatQuantity(stock.NewStockKg, convertedPlaces),
		NewStockLitre:        formatQuantity(stock.NewStockLitre, convertedPlaces),
		NewStockPieces:       formatQuantity(stock.NewStockPieces, countedPlaces),
		NewStockBoxes:        formatQuantity(stock.NewStockBoxes, countedPlaces),
		RemainingStockGram:   formatQuantity(stock.RemainingStockGram, countedPlaces),
		RemainingStockKg:     formatQuantity(stock.RemainingStockKg, convertedPlaces),
		RemainingStockLitre:  formatQuantity(stock.RemainingStockLitre, convertedPlaces),
		RemainingStockPieces: formatQuantity(stock.RemainingStockPieces, countedPlaces),
		RemainingStockBoxes:  formatQuantity(stock.RemainingStockBoxes, countedPlaces),
		CreatedAt:            stock.CreatedAt,
		UpdatedAt:            stock.UpdatedAt,
	}
}

func NewFlatOverallStockView(record models.FlatOverallStockRecord) OverallStockView {
	view := NewOverallStockView(record.OverallStock)
	view.ItemName = record.ItemName
	view.SectorCode = record.SectorCode
	view.SectorName = record.SectorName
	view.VehicleType = record.VehicleType
	view.PartNumber = record.PartNumber

	return view
}

type DailyStockView struct {
	ID            int           `json:"id"`
	ItemID        int           `json:"item_id"`
	ItemName      string        `json:"item_name,omitempty"`
	SectorCode    string        `json:"sector_code,omitempty"`
	SectorName    string        `json:"sector_name,omitempty"`
	VehicleType   *string       `json:"vehicle_type,omitempty"`
	PartNumber    *string       `json:"part_number,omitempty"`
	QuantityTaken string        `json:"quantity_taken"`
	Unit          metadata.Unit `json:"unit"`
	StockDate     string        `json:"stock_date"`
	Reason        string        `json:"reason"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewDailyStockView keeps quantity_taken in its raw form so "3/4" reads back as entered.
func NewDailyStockView(event models.DailyStock) DailyStockView {
	return DailyStockView{
		ID:            event.ID,
		ItemID:        event.ItemID,
		QuantityTaken: event.QuantityTaken,
		Unit:          event.Unit,
		StockDate:     event.StockDate.Format(time.DateOnly),
		Reason:        event.Reason,
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
	}
}

func NewFlatDailyStockView(record models.FlatDailyStockRecord) DailyStockView {
	view := NewDailyStockView(record.DailyStock)
	view.ItemName = record.ItemName
	view.SectorCode = record.SectorCode
	view.SectorName = record.SectorName
	view.VehicleType = record.VehicleType
	view.PartNumber = record.PartNumber

	return view
}
