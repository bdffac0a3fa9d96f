package stocks

import (
	"testing"
	"time"

	"central360/pkg/metadata"
	"central360/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		value    float64
		places   int32
		expected string
	}{
		{4.75, convertedPlaces, "4.75"},
		{5, convertedPlaces, "5"},
		{4.756, convertedPlaces, "4.76"},
		{0.3333333, countedPlaces, "0.333"},
		{4750, countedPlaces, "4750"},
		{1.100, countedPlaces, "1.1"},
		{0, countedPlaces, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatQuantity(tt.value, tt.places))
	}
}

func TestNewFlatOverallStockView(t *testing.T) {
	vehicle := "Truck"
	view := NewFlatOverallStockView(models.FlatOverallStockRecord{
		OverallStock: models.OverallStock{
			ID:                  3,
			ItemID:              9,
			NewStockKg:          5,
			RemainingStockGram:  4750,
			RemainingStockKg:    4.75,
			RemainingStockLitre: 4.75,
		},
		ItemName:    "Engine oil",
		SectorCode:  "TRN",
		SectorName:  "Transport",
		VehicleType: &vehicle,
	})

	assert.Equal(t, 9, view.ItemID)
	assert.Equal(t, "Engine oil", view.ItemName)
	assert.Equal(t, "Transport", view.SectorName)
	assert.Equal(t, "5", view.NewStockKg)
	assert.Equal(t, "4750", view.RemainingStockGram)
	assert.Equal(t, "4.75", view.RemainingStockKg)
	assert.Equal(t, view.RemainingStockKg, view.RemainingStockLitre)
	assert.Equal(t, &vehicle, view.VehicleType)
	assert.Nil(t, view.PartNumber)
}

func TestNewDailyStockViewKeepsRawQuantity(t *testing.T) {
	view := NewDailyStockView(models.DailyStock{
		ID:            1,
		ItemID:        2,
		QuantityTaken: "3/4",
		Unit:          metadata.UnitLitre,
		StockDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "3/4", view.QuantityTaken)
	assert.Equal(t, "2024-05-01", view.StockDate)
	assert.Equal(t, metadata.UnitLitre, view.Unit)
}
