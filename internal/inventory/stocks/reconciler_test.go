package stocks

import (
	"context"
	"errors"
	"testing"

	"central360/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ptr(v float64) *float64 { return &v }

func TestComputeRemaining(t *testing.T) {
	tests := []struct {
		name     string
		baseline models.UnitQuantities
		consumed models.UnitQuantities
		expected models.UnitQuantities
	}{
		{
			name:     "kg baseline consumed in grams",
			baseline: models.UnitQuantities{Kg: 5},
			consumed: models.UnitQuantities{Gram: 250},
			expected: models.UnitQuantities{Gram: 4750, Kg: 4.75, Litre: 4.75},
		},
		{
			name:     "litre and kg share the pool",
			baseline: models.UnitQuantities{Litre: 2},
			consumed: models.UnitQuantities{Kg: 0.5},
			expected: models.UnitQuantities{Gram: 1500, Kg: 1.5, Litre: 1.5},
		},
		{
			name:     "over consumption is clamped",
			baseline: models.UnitQuantities{Gram: 100, Pieces: 10, Boxes: 1},
			consumed: models.UnitQuantities{Kg: 1, Pieces: 12, Boxes: 3},
			expected: models.UnitQuantities{},
		},
		{
			name:     "nothing recorded",
			baseline: models.UnitQuantities{},
			consumed: models.UnitQuantities{},
			expected: models.UnitQuantities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining := ComputeRemaining(tt.baseline, tt.consumed)
			assert.InDelta(t, tt.expected.Gram, remaining.Gram, 1e-9)
			assert.InDelta(t, tt.expected.Kg, remaining.Kg, 1e-9)
			assert.InDelta(t, tt.expected.Litre, remaining.Litre, 1e-9)
			assert.InDelta(t, tt.expected.Pieces, remaining.Pieces, 1e-9)
			assert.InDelta(t, tt.expected.Boxes, remaining.Boxes, 1e-9)
		})
	}
}

func TestComputeRemainingNeverNegativeAndKgEqualsLitre(t *testing.T) {
	values := []float64{0, 0.25, 1, 3, 1000, 12345.5}
	for _, b := range values {
		for _, c := range values {
			remaining := ComputeRemaining(
				models.UnitQuantities{Gram: b, Kg: b, Litre: b, Pieces: b, Boxes: b},
				models.UnitQuantities{Gram: c, Kg: c, Litre: c, Pieces: c, Boxes: c},
			)
			assert.GreaterOrEqual(t, remaining.Gram, 0.0)
			assert.GreaterOrEqual(t, remaining.Pieces, 0.0)
			assert.GreaterOrEqual(t, remaining.Boxes, 0.0)
			assert.Equal(t, remaining.Kg, remaining.Litre)
		}
	}
}

func TestComputeRemainingKeepsPiecesAndBoxesIndependent(t *testing.T) {
	base := ComputeRemaining(
		models.UnitQuantities{Pieces: 10, Boxes: 4},
		models.UnitQuantities{Pieces: 3, Boxes: 1},
	)
	withMass := ComputeRemaining(
		models.UnitQuantities{Gram: 900, Kg: 7, Litre: 2, Pieces: 10, Boxes: 4},
		models.UnitQuantities{Gram: 50, Kg: 20, Litre: 1, Pieces: 3, Boxes: 1},
	)
	assert.Equal(t, base.Pieces, withMass.Pieces)
	assert.Equal(t, base.Boxes, withMass.Boxes)

	massOnly := ComputeRemaining(
		models.UnitQuantities{Kg: 3},
		models.UnitQuantities{Gram: 500},
	)
	withCounts := ComputeRemaining(
		models.UnitQuantities{Kg: 3, Pieces: 1},
		models.UnitQuantities{Gram: 500, Boxes: 9},
	)
	assert.Equal(t, massOnly.Gram, withCounts.Gram)
	assert.Equal(t, massOnly.Kg, withCounts.Kg)
}

func TestBaselineUpdateResolve(t *testing.T) {
	current := models.UnitQuantities{Gram: 10, Kg: 5, Litre: 1, Pieces: 3, Boxes: 2}
	update := BaselineUpdate{Litre: ptr(4)}

	assert.Equal(t, models.UnitQuantities{Litre: 4}, update.Resolve(current, OmitZero))
	assert.Equal(t,
		models.UnitQuantities{Gram: 10, Kg: 5, Litre: 4, Pieces: 3, Boxes: 2},
		update.Resolve(current, OmitPreserve),
	)
}

func TestBaselineUpdateIsZero(t *testing.T) {
	assert.True(t, BaselineUpdate{}.IsZero())
	assert.True(t, BaselineUpdate{Gram: ptr(0), Kg: ptr(0)}.IsZero())
	assert.False(t, BaselineUpdate{Boxes: ptr(1)}.IsZero())
}

func TestNewOmitPolicy(t *testing.T) {
	policy, err := NewOmitPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OmitZero, policy)

	policy, err = NewOmitPolicy("preserve")
	require.NoError(t, err)
	assert.Equal(t, OmitPreserve, policy)

	_, err = NewOmitPolicy("keep")
	assert.Error(t, err)
}

func TestSumRowsParsesFractionsAndBucketsByUnit(t *testing.T) {
	totals := sumRows([]models.ConsumptionRow{
		{QuantityTaken: "250", Unit: "gram"},
		{QuantityTaken: "1/4", Unit: "kg"},
		{QuantityTaken: "abc", Unit: "kg"},
		{QuantityTaken: "2", Unit: "litre"},
		{QuantityTaken: "3", Unit: "pieces"},
		{QuantityTaken: "1/2", Unit: "Boxes"},
		{QuantityTaken: "9", Unit: "crates"},
	})

	assert.Equal(t, models.UnitQuantities{Gram: 250, Kg: 0.25, Litre: 2, Pieces: 3, Boxes: 0.5}, totals)
}

func TestReconcileRollsBackBaselineOnFailure(t *testing.T) {
	store := newMemoryStore(1)
	reconciler := NewReconciler(store, OmitZero, zap.NewNop())

	_, err := reconciler.Reconcile(context.Background(), 1, &BaselineUpdate{Kg: ptr(5)})
	require.NoError(t, err)

	store.failSum = errors.New("connection reset")
	_, err = reconciler.Reconcile(context.Background(), 1, &BaselineUpdate{Kg: ptr(9)})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.failSum)

	assert.Equal(t, 5.0, store.stock(1).NewStockKg)
}

func TestReconcileAfterConsumptionLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	store := newMemoryStore(1)
	store.failSum = errors.New("connection reset")

	stock := NewReconciler(store, OmitZero, zap.New(core)).ReconcileAfterConsumption(context.Background(), 1)

	assert.Nil(t, stock)
	entries := logs.FilterMessage("Recalculating remaining stock failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["item_id"])
}
