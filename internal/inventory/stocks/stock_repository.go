package stocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"central360/internal/repository"
	custom_error "central360/pkg/errors"
	"central360/pkg/metadata"
	"central360/pkg/models"
	"central360/pkg/quantity"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

var overallStockColumns = []interface{}{
	"id", "item_id",
	"new_stock_gram", "new_stock_kg", "new_stock_litre", "new_stock_pieces", "new_stock_boxes",
	"remaining_stock_gram", "remaining_stock_kg", "remaining_stock_litre", "remaining_stock_pieces", "remaining_stock_boxes",
	"created_at", "updated_at",
}

var dailyStockColumns = []interface{}{
	"id", "item_id", "quantity_taken", "unit", "stock_date", "reason", "created_at", "updated_at",
}

type StockRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *StockRepository {
	return &StockRepository{repository: r}
}

// Atomically runs fn with a Ledger bound to a single transaction.
func (r *StockRepository) Atomically(ctx context.Context, fn func(Ledger) error) error {
	return repository.WithTransaction(ctx, r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		return fn(&ledger{q: tx})
	})
}

func (r *StockRepository) StockItemExists(ctx context.Context, itemID int) (bool, error) {
	count, err := r.repository.GoquDBWrapper.
		From("stock_items").
		Where(goqu.Ex{"id": itemID}).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check stock item %d: %w", itemID, err)
	}

	return count > 0, nil
}

// FindItemIDByAggregate resolves the item referenced by an overall_stock row id.
func (r *StockRepository) FindItemIDByAggregate(ctx context.Context, aggregateID int) (int, bool, error) {
	var itemID int
	found, err := r.repository.GoquDBWrapper.
		From("overall_stock").
		Select("item_id").
		Where(goqu.Ex{"id": aggregateID}).
		ScanValContext(ctx, &itemID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve overall stock %d: %w", aggregateID, err)
	}

	return itemID, found, nil
}

func (r *StockRepository) UpsertConsumptionEvent(ctx context.Context, itemID int, date time.Time, raw string, unit metadata.Unit, reason string) (*models.DailyStock, error) {
	query := r.repository.GoquDBWrapper.Insert("daily_stock").
		Rows(goqu.Record{
			"item_id":        itemID,
			"quantity_taken": raw,
			"unit":           unit.String(),
			"stock_date":     date.Format(time.DateOnly),
			"reason":         reason,
		}).
		OnConflict(
			goqu.DoUpdate(
				"item_id, stock_date",
				goqu.Record{
					"quantity_taken": goqu.L("EXCLUDED.quantity_taken"),
					"unit":           goqu.L("EXCLUDED.unit"),
					"reason":         goqu.L("EXCLUDED.reason"),
					"updated_at":     goqu.L("CURRENT_TIMESTAMP"),
				},
			),
		).
		Returning(dailyStockColumns...)

	var event models.DailyStock
	if _, err := query.Executor().ScanStructContext(ctx, &event); err != nil {
		return nil, custom_error.FromPQ(err, fmt.Sprintf("failed to upsert daily stock for item %d", itemID))
	}

	return &event, nil
}

// UpdateConsumptionEvent rewrites an existing event by id. It reports false when no row matched.
func (r *StockRepository) UpdateConsumptionEvent(ctx context.Context, id int, raw string, unit metadata.Unit, reason string) (*models.DailyStock, bool, error) {
	query := r.repository.GoquDBWrapper.Update("daily_stock").
		Set(goqu.Record{
			"quantity_taken": raw,
			"unit":           unit.String(),
			"reason":         reason,
			"updated_at":     goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.Ex{"id": id}).
		Returning(dailyStockColumns...)

	var event models.DailyStock
	found, err := query.Executor().ScanStructContext(ctx, &event)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update daily stock %d: %w", id, err)
	}

	return &event, found, nil
}

func (r *StockRepository) ListOverallStock(ctx context.Context, conditions repository.QueryBuilder) ([]models.FlatOverallStockRecord, error) {
	aliases := map[string]string{
		"sector":  "si.sector_code",
		"item_id": "os.item_id",
	}

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("os.id").As("id"),
			goqu.I("os.item_id").As("item_id"),
			goqu.I("os.new_stock_gram").As("new_stock_gram"),
			goqu.I("os.new_stock_kg").As("new_stock_kg"),
			goqu.I("os.new_stock_litre").As("new_stock_litre"),
			goqu.I("os.new_stock_pieces").As("new_stock_pieces"),
			goqu.I("os.new_stock_boxes").As("new_stock_boxes"),
			goqu.I("os.remaining_stock_gram").As("remaining_stock_gram"),
			goqu.I("os.remaining_stock_kg").As("remaining_stock_kg"),
			goqu.I("os.remaining_stock_litre").As("remaining_stock_litre"),
			goqu.I("os.remaining_stock_pieces").As("remaining_stock_pieces"),
			goqu.I("os.remaining_stock_boxes").As("remaining_stock_boxes"),
			goqu.I("os.created_at").As("created_at"),
			goqu.I("os.updated_at").As("updated_at"),
			goqu.I("si.item_name").As("item_name"),
			goqu.I("si.sector_code").As("sector_code"),
			goqu.I("s.name").As("sector_name"),
			goqu.I("si.vehicle_type").As("vehicle_type"),
			goqu.I("si.part_number").As("part_number"),
		).
		From(goqu.T("overall_stock").As("os")).
		Join(
			goqu.T("stock_items").As("si"),
			goqu.On(goqu.Ex{"os.item_id": goqu.I("si.id")}),
		).
		Join(
			goqu.T("sectors").As("s"),
			goqu.On(goqu.Ex{"si.sector_code": goqu.I("s.code")}),
		).
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("si.sector_code").Asc(), goqu.I("si.item_name").Asc())

	records := []models.FlatOverallStockRecord{}
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to select overall stock from database: %w", err)
	}

	return records, nil
}

func (r *StockRepository) ListDailyStock(ctx context.Context, conditions repository.QueryBuilder) ([]models.FlatDailyStockRecord, error) {
	aliases := map[string]string{
		"sector":  "si.sector_code",
		"date":    "ds.stock_date",
		"item_id": "ds.item_id",
	}

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("ds.id").As("id"),
			goqu.I("ds.item_id").As("item_id"),
			goqu.I("ds.quantity_taken").As("quantity_taken"),
			goqu.I("ds.unit").As("unit"),
			goqu.I("ds.stock_date").As("stock_date"),
			goqu.I("ds.reason").As("reason"),
			goqu.I("ds.created_at").As("created_at"),
			goqu.I("ds.updated_at").As("updated_at"),
			goqu.I("si.item_name").As("item_name"),
			goqu.I("si.sector_code").As("sector_code"),
			goqu.I("s.name").As("sector_name"),
			goqu.I("si.vehicle_type").As("vehicle_type"),
			goqu.I("si.part_number").As("part_number"),
		).
		From(goqu.T("daily_stock").As("ds")).
		Join(
			goqu.T("stock_items").As("si"),
			goqu.On(goqu.Ex{"ds.item_id": goqu.I("si.id")}),
		).
		Join(
			goqu.T("sectors").As("s"),
			goqu.On(goqu.Ex{"si.sector_code": goqu.I("s.code")}),
		).
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("si.sector_code").Asc(), goqu.I("si.item_name").Asc(), goqu.I("ds.stock_date").Asc())

	records := []models.FlatDailyStockRecord{}
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to select daily stock from database: %w", err)
	}

	return records, nil
}

// ledger implements Ledger on top of either the database or a transaction.
type ledger struct {
	q repository.QueryRunner
}

func (l *ledger) LockBaseline(ctx context.Context, itemID int) (models.UnitQuantities, error) {
	ensure := l.q.Insert("overall_stock").
		Rows(goqu.Record{"item_id": itemID}).
		OnConflict(goqu.DoNothing())
	if _, err := ensure.Executor().ExecContext(ctx); err != nil {
		return models.UnitQuantities{}, custom_error.FromPQ(err, fmt.Sprintf("failed to create overall stock for item %d", itemID))
	}

	var stock models.OverallStock
	found, err := l.q.From("overall_stock").
		Select(overallStockColumns...).
		Where(goqu.Ex{"item_id": itemID}).
		ForUpdate(exp.Wait).
		ScanStructContext(ctx, &stock)
	if err != nil {
		return models.UnitQuantities{}, fmt.Errorf("failed to select overall stock for item %d: %w", itemID, err)
	}
	if !found {
		return models.UnitQuantities{}, fmt.Errorf("overall stock for item %d: %w", itemID, sql.ErrNoRows)
	}

	return stock.Baseline(), nil
}

func (l *ledger) UpsertBaseline(ctx context.Context, itemID int, baseline models.UnitQuantities) error {
	query := l.q.Insert("overall_stock").
		Rows(goqu.Record{
			"item_id":          itemID,
			"new_stock_gram":   baseline.Gram,
			"new_stock_kg":     baseline.Kg,
			"new_stock_litre":  baseline.Litre,
			"new_stock_pieces": baseline.Pieces,
			"new_stock_boxes":  baseline.Boxes,
		}).
		OnConflict(
			goqu.DoUpdate(
				"item_id",
				goqu.Record{
					"new_stock_gram":   goqu.L("EXCLUDED.new_stock_gram"),
					"new_stock_kg":     goqu.L("EXCLUDED.new_stock_kg"),
					"new_stock_litre":  goqu.L("EXCLUDED.new_stock_litre"),
					"new_stock_pieces": goqu.L("EXCLUDED.new_stock_pieces"),
					"new_stock_boxes":  goqu.L("EXCLUDED.new_stock_boxes"),
					"updated_at":       goqu.L("CURRENT_TIMESTAMP"),
				},
			),
		)

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return custom_error.FromPQ(err, fmt.Sprintf("failed to upsert baseline for item %d", itemID))
	}

	return nil
}

// SumConsumption totals every consumption event of the item per unit family.
// Quantities are parsed here so fractions such as "1/4" count with their real value.
func (l *ledger) SumConsumption(ctx context.Context, itemID int) (models.UnitQuantities, error) {
	var rows []models.ConsumptionRow
	err := l.q.From("daily_stock").
		Select("quantity_taken", "unit").
		Where(goqu.Ex{"item_id": itemID}).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return models.UnitQuantities{}, fmt.Errorf("failed to load daily stock for item %d: %w", itemID, err)
	}

	return sumRows(rows), nil
}

func (l *ledger) WriteRemaining(ctx context.Context, itemID int, remaining models.UnitQuantities) (*models.OverallStock, error) {
	query := l.q.Update("overall_stock").
		Set(goqu.Record{
			"remaining_stock_gram":   remaining.Gram,
			"remaining_stock_kg":     remaining.Kg,
			"remaining_stock_litre":  remaining.Litre,
			"remaining_stock_pieces": remaining.Pieces,
			"remaining_stock_boxes":  remaining.Boxes,
			"updated_at":             goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.Ex{"item_id": itemID}).
		Returning(overallStockColumns...)

	var stock models.OverallStock
	found, err := query.Executor().ScanStructContext(ctx, &stock)
	if err != nil {
		return nil, fmt.Errorf("failed to update remaining stock: %w", err)
	}
	if !found {
		return nil, &custom_error.NotFoundError{Resource: "overall stock for item", ID: itemID}
	}

	return &stock, nil
}

func sumRows(rows []models.ConsumptionRow) models.UnitQuantities {
	var totals models.UnitQuantities
	for _, row := range rows {
		unit := metadata.Unit(row.Unit)
		if !unit.IsValid() {
			// rows written before the unit check existed are matched leniently
			parsed, err := metadata.NewUnit(row.Unit)
			if err != nil {
				continue
			}
			unit = parsed
		}
		totals.Add(unit, quantity.Parse(row.QuantityTaken).Value())
	}

	return totals
}
