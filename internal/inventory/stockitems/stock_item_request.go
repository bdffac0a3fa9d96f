package stockitems

import (
	"strings"

	custom_error "central360/pkg/errors"
	"central360/pkg/metadata"
)

type StockItemRequest struct {
	ItemName    string  `json:"item_name"`
	SectorCode  string  `json:"sector_code"`
	VehicleType *string `json:"vehicle_type"`
	PartNumber  *string `json:"part_number"`
}

// normalize trims every field and turns blank optional fields into NULL.
func (r *StockItemRequest) normalize() error {
	r.ItemName = strings.TrimSpace(r.ItemName)
	if r.ItemName == "" {
		return custom_error.NewValidationError("item_name", "Item name is required")
	}

	code, err := metadata.NewSectorCode(r.SectorCode)
	if err != nil {
		return custom_error.NewValidationError("sector_code", "%s", err.Error())
	}
	r.SectorCode = code.String()

	r.VehicleType = trimOptional(r.VehicleType)
	r.PartNumber = trimOptional(r.PartNumber)

	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type StockItemQuery struct {
	Sector string `form:"sector"`
}
