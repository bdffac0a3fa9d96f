package models

import "time"

type StockItem struct {
	ID          int       `json:"id" db:"id"`
	ItemName    string    `json:"item_name" db:"item_name"`
	SectorCode  string    `json:"sector_code" db:"sector_code"`
	VehicleType *string   `json:"vehicle_type" db:"vehicle_type"`
	PartNumber  *string   `json:"part_number" db:"part_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (s *StockItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "stock_item",
	}
}
