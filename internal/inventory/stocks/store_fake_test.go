package stocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"central360/internal/repository"
	"central360/pkg/auditlog"
	"central360/pkg/metadata"
	"central360/pkg/models"
)

// memoryStore is an in-memory Store. Atomically holds the mutex for the whole callback,
// which mirrors the row lock taken by the Postgres ledger.
type memoryStore struct {
	mu         sync.Mutex
	items      map[int]models.StockItem
	aggregates map[int]*models.OverallStock
	events     []models.DailyStock
	nextID     int

	failSum     error
	failSumItem int
	failList    error

	// afterList runs once, after ListOverallStock has read its rows and released the lock.
	afterList func()
}

func newMemoryStore(itemIDs ...int) *memoryStore {
	s := &memoryStore{
		items:      map[int]models.StockItem{},
		aggregates: map[int]*models.OverallStock{},
		nextID:     100,
	}
	for _, id := range itemIDs {
		s.items[id] = models.StockItem{ID: id, ItemName: "item", SectorCode: "SSB"}
	}
	return s
}

func (s *memoryStore) Atomically(ctx context.Context, fn func(Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int]models.OverallStock, len(s.aggregates))
	for k, v := range s.aggregates {
		snapshot[k] = *v
	}

	if err := fn(&memoryLedger{s: s}); err != nil {
		s.aggregates = map[int]*models.OverallStock{}
		for k, v := range snapshot {
			stock := v
			s.aggregates[k] = &stock
		}
		return err
	}
	return nil
}

func (s *memoryStore) aggregate(itemID int) *models.OverallStock {
	stock, ok := s.aggregates[itemID]
	if !ok {
		s.nextID++
		stock = &models.OverallStock{ID: s.nextID, ItemID: itemID}
		s.aggregates[itemID] = stock
	}
	return stock
}

func (s *memoryStore) StockItemExists(ctx context.Context, itemID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[itemID]
	return ok, nil
}

func (s *memoryStore) FindItemIDByAggregate(ctx context.Context, aggregateID int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stock := range s.aggregates {
		if stock.ID == aggregateID {
			return stock.ItemID, true, nil
		}
	}
	return 0, false, nil
}

func (s *memoryStore) UpsertConsumptionEvent(ctx context.Context, itemID int, date time.Time, raw string, unit metadata.Unit, reason string) (*models.DailyStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := date.Format(time.DateOnly)
	for i := range s.events {
		if s.events[i].ItemID == itemID && s.events[i].StockDate.Format(time.DateOnly) == day {
			s.events[i].QuantityTaken = raw
			s.events[i].Unit = unit
			s.events[i].Reason = reason
			event := s.events[i]
			return &event, nil
		}
	}

	s.nextID++
	stockDate, _ := time.Parse(time.DateOnly, day)
	event := models.DailyStock{
		ID:            s.nextID,
		ItemID:        itemID,
		QuantityTaken: raw,
		Unit:          unit,
		StockDate:     stockDate,
		Reason:        reason,
	}
	s.events = append(s.events, event)
	return &event, nil
}

func (s *memoryStore) UpdateConsumptionEvent(ctx context.Context, id int, raw string, unit metadata.Unit, reason string) (*models.DailyStock, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].QuantityTaken = raw
			s.events[i].Unit = unit
			s.events[i].Reason = reason
			event := s.events[i]
			return &event, true, nil
		}
	}
	return nil, false, nil
}

func (s *memoryStore) ListOverallStock(ctx context.Context, conditions repository.QueryBuilder) ([]models.FlatOverallStockRecord, error) {
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		defer hook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList != nil {
		return nil, s.failList
	}

	records := []models.FlatOverallStockRecord{}
	for itemID, stock := range s.aggregates {
		item := s.items[itemID]
		records = append(records, models.FlatOverallStockRecord{
			OverallStock: *stock,
			ItemName:     item.ItemName,
			SectorCode:   item.SectorCode,
			SectorName:   "Stores",
		})
	}
	return records, nil
}

func (s *memoryStore) ListDailyStock(ctx context.Context, conditions repository.QueryBuilder) ([]models.FlatDailyStockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList != nil {
		return nil, s.failList
	}

	records := []models.FlatDailyStockRecord{}
	for _, event := range s.events {
		records = append(records, models.FlatDailyStockRecord{DailyStock: event, ItemName: s.items[event.ItemID].ItemName})
	}
	return records, nil
}

func (s *memoryStore) stock(itemID int) models.OverallStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.aggregates[itemID]
}

type memoryLedger struct {
	s *memoryStore
}

func (l *memoryLedger) LockBaseline(ctx context.Context, itemID int) (models.UnitQuantities, error) {
	if _, ok := l.s.items[itemID]; !ok {
		return models.UnitQuantities{}, errors.New("foreign key violation")
	}
	return l.s.aggregate(itemID).Baseline(), nil
}

func (l *memoryLedger) UpsertBaseline(ctx context.Context, itemID int, baseline models.UnitQuantities) error {
	stock := l.s.aggregate(itemID)
	stock.NewStockGram = baseline.Gram
	stock.NewStockKg = baseline.Kg
	stock.NewStockLitre = baseline.Litre
	stock.NewStockPieces = baseline.Pieces
	stock.NewStockBoxes = baseline.Boxes
	return nil
}

func (l *memoryLedger) SumConsumption(ctx context.Context, itemID int) (models.UnitQuantities, error) {
	if l.s.failSum != nil && (l.s.failSumItem == 0 || l.s.failSumItem == itemID) {
		return models.UnitQuantities{}, l.s.failSum
	}

	var rows []models.ConsumptionRow
	for _, event := range l.s.events {
		if event.ItemID == itemID {
			rows = append(rows, models.ConsumptionRow{QuantityTaken: event.QuantityTaken, Unit: event.Unit.String()})
		}
	}
	return sumRows(rows), nil
}

func (l *memoryLedger) WriteRemaining(ctx context.Context, itemID int, remaining models.UnitQuantities) (*models.OverallStock, error) {
	stock := l.s.aggregate(itemID)
	stock.RemainingStockGram = remaining.Gram
	stock.RemainingStockKg = remaining.Kg
	stock.RemainingStockLitre = remaining.Litre
	stock.RemainingStockPieces = remaining.Pieces
	stock.RemainingStockBoxes = remaining.Boxes
	result := *stock
	return &result, nil
}

type recordingAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAuditor) Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action+":"+item.CreateLogView().ResourceType)
}

// memoryCache mirrors RedisCache: keys are scoped to a generation that Invalidate bumps.
type memoryCache struct {
	values      map[string][]OverallStockView
	generation  int
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]OverallStockView{}}
}

func (c *memoryCache) Scope(ctx context.Context, key string) (string, bool) {
	return fmt.Sprintf("%d:%s", c.generation, key), true
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) bool {
	v, ok := c.values[key]
	if !ok {
		return false
	}
	*dest.(*[]OverallStockView) = v
	return true
}

func (c *memoryCache) Set(ctx context.Context, key string, value any) {
	c.values[key] = value.([]OverallStockView)
}

func (c *memoryCache) Invalidate(ctx context.Context) {
	c.generation++
	c.invalidated++
}
