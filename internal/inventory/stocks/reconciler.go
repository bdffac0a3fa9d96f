package stocks

import (
	"context"
	"fmt"
	"math"

	"central360/pkg/models"
	"central360/pkg/quantity"

	"go.uber.org/zap"
)

// OmitPolicy decides what a baseline update does with unit families it does not mention.
type OmitPolicy string

const (
	// OmitZero resets omitted baseline fields to 0.
	OmitZero OmitPolicy = "zero"
	// OmitPreserve keeps the stored value of omitted baseline fields.
	OmitPreserve OmitPolicy = "preserve"
)

func NewOmitPolicy(value string) (OmitPolicy, error) {
	switch OmitPolicy(value) {
	case "", OmitZero:
		return OmitZero, nil
	case OmitPreserve:
		return OmitPreserve, nil
	default:
		return "", fmt.Errorf("invalid baseline omit policy %q, expected %q or %q", value, OmitZero, OmitPreserve)
	}
}

// Ledger is the set of store operations the reconciliation runs inside one transaction.
type Ledger interface {
	// LockBaseline creates the aggregate row when missing and locks it for the transaction.
	LockBaseline(ctx context.Context, itemID int) (models.UnitQuantities, error)
	UpsertBaseline(ctx context.Context, itemID int, baseline models.UnitQuantities) error
	SumConsumption(ctx context.Context, itemID int) (models.UnitQuantities, error)
	WriteRemaining(ctx context.Context, itemID int, remaining models.UnitQuantities) (*models.OverallStock, error)
}

type LedgerStore interface {
	Atomically(ctx context.Context, fn func(Ledger) error) error
}

// BaselineUpdate carries the baseline fields present in a request; nil means omitted.
type BaselineUpdate struct {
	Gram   *float64
	Kg     *float64
	Litre  *float64
	Pieces *float64
	Boxes  *float64
}

// IsZero reports whether every supplied field is 0, omitted fields included.
func (u BaselineUpdate) IsZero() bool {
	for _, v := range []*float64{u.Gram, u.Kg, u.Litre, u.Pieces, u.Boxes} {
		if v != nil && *v != 0 {
			return false
		}
	}
	return true
}

func (u BaselineUpdate) Resolve(current models.UnitQuantities, policy OmitPolicy) models.UnitQuantities {
	pick := func(supplied *float64, stored float64) float64 {
		if supplied != nil {
			return *supplied
		}
		if policy == OmitPreserve {
			return stored
		}
		return 0
	}

	return models.UnitQuantities{
		Gram:   pick(u.Gram, current.Gram),
		Kg:     pick(u.Kg, current.Kg),
		Litre:  pick(u.Litre, current.Litre),
		Pieces: pick(u.Pieces, current.Pieces),
		Boxes:  pick(u.Boxes, current.Boxes),
	}
}

// ComputeRemaining subtracts consumption from the baseline per unit family, floored at 0.
// Gram, kg and litre share one gram-equivalent pool; pieces and boxes stand alone.
func ComputeRemaining(baseline, consumed models.UnitQuantities) models.UnitQuantities {
	newInGram := quantity.ToGramEquivalent(baseline.Gram, baseline.Kg, baseline.Litre)
	takenInGram := quantity.ToGramEquivalent(consumed.Gram, consumed.Kg, consumed.Litre)

	remainingInGram := math.Max(0, newInGram-takenInGram)
	remainingKg := quantity.FromGramEquivalent(remainingInGram)

	return models.UnitQuantities{
		Gram:   remainingInGram,
		Kg:     remainingKg,
		Litre:  remainingKg,
		Pieces: math.Max(0, baseline.Pieces-consumed.Pieces),
		Boxes:  math.Max(0, baseline.Boxes-consumed.Boxes),
	}
}

type Reconciler struct {
	store  LedgerStore
	policy OmitPolicy
	logger *zap.Logger
}

func NewReconciler(store LedgerStore, policy OmitPolicy, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// Reconcile recomputes the remaining stock of an item. When update is not nil the baseline
// is rewritten first, in the same transaction.
func (r *Reconciler) Reconcile(ctx context.Context, itemID int, update *BaselineUpdate) (*models.OverallStock, error) {
	var stock *models.OverallStock

	err := r.store.Atomically(ctx, func(l Ledger) error {
		baseline, err := l.LockBaseline(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to lock baseline of item %d: %w", itemID, err)
		}

		if update != nil {
			baseline = update.Resolve(baseline, r.policy)
			if err := l.UpsertBaseline(ctx, itemID, baseline); err != nil {
				return fmt.Errorf("failed to store baseline of item %d: %w", itemID, err)
			}
		}

		consumed, err := l.SumConsumption(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to sum consumption of item %d: %w", itemID, err)
		}

		stock, err = l.WriteRemaining(ctx, itemID, ComputeRemaining(baseline, consumed))
		if err != nil {
			return fmt.Errorf("failed to write remaining stock of item %d: %w", itemID, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stock, nil
}

// ReconcileAfterConsumption never fails the caller: the consumption event is already stored,
// so a failed recomputation is only logged and the aggregate stays stale until the next write.
func (r *Reconciler) ReconcileAfterConsumption(ctx context.Context, itemID int) *models.OverallStock {
	stock, err := r.Reconcile(ctx, itemID, nil)
	if err != nil {
		r.logger.Error("Recalculating remaining stock failed",
			zap.Int("item_id", itemID),
			zap.Error(err),
		)
		return nil
	}

	return stock
}
