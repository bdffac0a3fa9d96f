package stocks

import (
	"context"
	"fmt"
	"time"

	"central360/internal/repository"
	"central360/pkg/auditlog"
	custom_error "central360/pkg/errors"
	"central360/pkg/metadata"
	"central360/pkg/models"
	"central360/pkg/quantity"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"
)

// Store is everything the stock flows need from persistence.
type Store interface {
	LedgerStore
	StockItemExists(ctx context.Context, itemID int) (bool, error)
	FindItemIDByAggregate(ctx context.Context, aggregateID int) (int, bool, error)
	UpsertConsumptionEvent(ctx context.Context, itemID int, date time.Time, raw string, unit metadata.Unit, reason string) (*models.DailyStock, error)
	UpdateConsumptionEvent(ctx context.Context, id int, raw string, unit metadata.Unit, reason string) (*models.DailyStock, bool, error)
	ListOverallStock(ctx context.Context, conditions repository.QueryBuilder) ([]models.FlatOverallStockRecord, error)
	ListDailyStock(ctx context.Context, conditions repository.QueryBuilder) ([]models.FlatDailyStockRecord, error)
}

type Auditor interface {
	Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable)
}

// ResponseCache scopes keys to the current cache generation. Get and Set take the scoped key.
type ResponseCache interface {
	Scope(ctx context.Context, key string) (string, bool)
	Get(ctx context.Context, scopedKey string, dest any) bool
	Set(ctx context.Context, scopedKey string, value any)
	Invalidate(ctx context.Context)
}

type StockService struct {
	store      Store
	reconciler *Reconciler
	auditor    Auditor
	cache      ResponseCache
	logger     *zap.Logger
	now        func() time.Time
}

func NewStockService(store Store, reconciler *Reconciler, auditor Auditor, cache ResponseCache, logger *zap.Logger) *StockService {
	return &StockService{
		store:      store,
		reconciler: reconciler,
		auditor:    auditor,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

func overallStockCacheKey(sector string) string {
	return "overall-stock:" + sector
}

func (s *StockService) OverallStock(ctx context.Context, query OverallStockQuery) ([]OverallStockView, error) {
	key, cacheable := s.cache.Scope(ctx, overallStockCacheKey(query.Sector))

	var cached []OverallStockView
	if cacheable && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	conditions := repository.NewQueryBuilder()
	if query.Sector != "" {
		conditions.AddCondition("sector", query.Sector)
	}

	records, err := s.store.ListOverallStock(ctx, conditions)
	if err != nil {
		return nil, err
	}

	views := make([]OverallStockView, 0, len(records))
	for _, record := range records {
		views = append(views, NewFlatOverallStockView(record))
	}

	if cacheable {
		s.cache.Set(ctx, key, views)
	}

	return views, nil
}

// UpdateBaselines applies every entry in order. Entries without a resolvable item and entries
// whose supplied baseline is all zero are skipped without error.
func (s *StockService) UpdateBaselines(ctx context.Context, updates []BaselineUpdateRequest) ([]OverallStockView, error) {
	results := []OverallStockView{}
	written := []int{}
	defer s.cache.Invalidate(ctx)

	for _, req := range updates {
		itemID, ok, err := s.resolveBaselineItem(ctx, req)
		if err != nil {
			s.logPartialBatch("Baseline batch aborted", "written_item_ids", written, err)
			return nil, err
		}
		if !ok {
			s.logger.Debug("Skipping baseline update without resolvable item", zap.Any("id", req.ID), zap.Any("item_id", req.ItemID))
			continue
		}

		update := req.toBaselineUpdate()
		if update.IsZero() {
			continue
		}

		stock, err := s.reconciler.Reconcile(ctx, itemID, &update)
		if err != nil {
			s.logPartialBatch("Baseline batch aborted", "written_item_ids", written, err)
			return nil, err
		}
		written = append(written, itemID)

		s.auditor.Log(ctx, "baseline", map[string]interface{}{
			"new_stock": stock.Baseline(),
			"remaining": stock.Remaining(),
			"msg":       "Baseline stock updated",
		}, stock)

		results = append(results, NewOverallStockView(*stock))
	}

	return results, nil
}

// logPartialBatch records which entries were already committed when a batch fails midway.
// Earlier entries are not rolled back.
func (s *StockService) logPartialBatch(msg, field string, written []int, err error) {
	if len(written) == 0 {
		return
	}
	s.logger.Error(msg, zap.Ints(field, written), zap.Error(err))
}

func (s *StockService) resolveBaselineItem(ctx context.Context, req BaselineUpdateRequest) (int, bool, error) {
	if req.ItemID != nil && *req.ItemID > 0 {
		exists, err := s.store.StockItemExists(ctx, *req.ItemID)
		if err != nil {
			return 0, false, err
		}
		return *req.ItemID, exists, nil
	}

	if req.ID != nil && *req.ID > 0 {
		return s.store.FindItemIDByAggregate(ctx, *req.ID)
	}

	return 0, false, nil
}

func (s *StockService) DailyStock(ctx context.Context, query DailyStockQuery) ([]DailyStockView, error) {
	conditions, err := dailyStockConditions(query)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListDailyStock(ctx, conditions)
	if err != nil {
		return nil, err
	}

	views := make([]DailyStockView, 0, len(records))
	for _, record := range records {
		views = append(views, NewFlatDailyStockView(record))
	}

	return views, nil
}

func dailyStockConditions(query DailyStockQuery) (repository.QueryBuilder, error) {
	conditions := repository.NewQueryBuilder()

	if query.Sector != "" {
		conditions.AddCondition("sector", query.Sector)
	}
	if query.Date != "" {
		date, err := parseDate("date", query.Date)
		if err != nil {
			return nil, err
		}
		conditions.AddCondition("date", date.Format(time.DateOnly))
	}
	if query.Month != nil {
		conditions.AddExpression(goqu.L("EXTRACT(MONTH FROM ?)", goqu.I("ds.stock_date")).Eq(*query.Month))
	}
	if query.Year != nil {
		conditions.AddExpression(goqu.L("EXTRACT(YEAR FROM ?)", goqu.I("ds.stock_date")).Eq(*query.Year))
	}
	if query.From != "" {
		from, err := parseDate("from", query.From)
		if err != nil {
			return nil, err
		}
		conditions.AddExpression(goqu.I("ds.stock_date").Gte(from.Format(time.DateOnly)))
	}
	if query.To != "" {
		to, err := parseDate("to", query.To)
		if err != nil {
			return nil, err
		}
		conditions.AddExpression(goqu.I("ds.stock_date").Lte(to.Format(time.DateOnly)))
	}

	return conditions, nil
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, custom_error.NewValidationError(field, "expected a date in YYYY-MM-DD format, got %q", value)
	}
	return date, nil
}

type consumption struct {
	request  ConsumptionRequest
	unit     metadata.Unit
	quantity quantity.Quantity
}

// RecordConsumption stores one event per entry and reconciles the affected item after each write.
// Units are validated for the whole batch before anything is written.
func (s *StockService) RecordConsumption(ctx context.Context, date string, updates []ConsumptionRequest) ([]DailyStockView, error) {
	stockDate := s.now()
	if date != "" {
		parsed, err := parseDate("date", date)
		if err != nil {
			return nil, err
		}
		stockDate = parsed
	}

	entries := make([]consumption, 0, len(updates))
	for i, req := range updates {
		unit, err := metadata.NewUnit(req.Unit)
		if err != nil {
			return nil, custom_error.NewValidationError(fmt.Sprintf("updates[%d].unit", i), "%s", err.Error())
		}
		entries = append(entries, consumption{
			request:  req,
			unit:     unit,
			quantity: quantity.Of(req.QuantityTaken),
		})
	}

	results := []DailyStockView{}
	written := []int{}
	defer s.cache.Invalidate(ctx)

	for _, entry := range entries {
		event, err := s.writeConsumption(ctx, stockDate, entry)
		if err != nil {
			s.logPartialBatch("Consumption batch aborted", "written_event_ids", written, err)
			return nil, err
		}
		if event == nil {
			continue
		}
		written = append(written, event.ID)

		s.auditor.Log(ctx, "consume", map[string]interface{}{
			"item_id":        event.ItemID,
			"quantity_taken": event.QuantityTaken,
			"unit":           event.Unit,
			"stock_date":     event.StockDate.Format(time.DateOnly),
			"reason":         event.Reason,
		}, event)

		s.reconciler.ReconcileAfterConsumption(ctx, event.ItemID)

		results = append(results, NewDailyStockView(*event))
	}

	return results, nil
}

// writeConsumption returns nil without error when the entry references nothing that exists.
func (s *StockService) writeConsumption(ctx context.Context, stockDate time.Time, entry consumption) (*models.DailyStock, error) {
	req := entry.request
	raw := entry.quantity.String()

	if req.ID != nil && *req.ID > 0 {
		event, found, err := s.store.UpdateConsumptionEvent(ctx, *req.ID, raw, entry.unit, req.Reason)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		return event, nil
	}

	if req.ItemID == nil || *req.ItemID <= 0 {
		return nil, nil
	}

	exists, err := s.store.StockItemExists(ctx, *req.ItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	return s.store.UpsertConsumptionEvent(ctx, *req.ItemID, stockDate, raw, entry.unit, req.Reason)
}
