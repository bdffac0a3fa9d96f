package models

import (
	"time"

	"central360/pkg/metadata"
)

// DailyStock is a single consumption event. QuantityTaken keeps the raw input form, e.g. "3/4".
type DailyStock struct {
	ID            int           `json:"id" db:"id"`
	ItemID        int           `json:"item_id" db:"item_id"`
	QuantityTaken string        `json:"quantity_taken" db:"quantity_taken"`
	Unit          metadata.Unit `json:"unit" db:"unit"`
	StockDate     time.Time     `json:"stock_date" db:"stock_date"`
	Reason        string        `json:"reason" db:"reason"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

func (d *DailyStock) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   d.ID,
		ResourceType: "daily_stock",
	}
}

type FlatDailyStockRecord struct {
	DailyStock
	ItemName    string  `db:"item_name"`
	SectorCode  string  `db:"sector_code"`
	SectorName  string  `db:"sector_name"`
	VehicleType *string `db:"vehicle_type"`
	PartNumber  *string `db:"part_number"`
}

// ConsumptionRow is the minimal projection summed during reconciliation.
type ConsumptionRow struct {
	QuantityTaken string `db:"quantity_taken"`
	Unit          string `db:"unit"`
}
