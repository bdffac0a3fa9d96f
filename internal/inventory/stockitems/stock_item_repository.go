package stockitems

import (
	"context"
	"fmt"

	"central360/internal/repository"
	custom_error "central360/pkg/errors"
	"central360/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var stockItemColumns = []interface{}{
	"id", "item_name", "sector_code", "vehicle_type", "part_number", "created_at", "updated_at",
}

type StockItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *StockItemRepository {
	return &StockItemRepository{repository: r}
}

func (r *StockItemRepository) GetStockItemsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.StockItem, error) {
	items := []models.StockItem{}
	err := r.repository.GoquDBWrapper.
		From("stock_items").
		Select(stockItemColumns...).
		Where(conditions.BuildConditions(map[string]string{"sector": "sector_code"})).
		Order(goqu.I("item_name").Asc()).
		ScanStructsContext(ctx, &items)
	if err != nil {
		return nil, fmt.Errorf("unable to select stock items from database: %w", err)
	}

	return items, nil
}

func (r *StockItemRepository) GetStockItem(ctx context.Context, id int) (*models.StockItem, error) {
	var item models.StockItem
	found, err := r.repository.GoquDBWrapper.
		From("stock_items").
		Select(stockItemColumns...).
		Where(goqu.Ex{"id": id}).
		ScanStructContext(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to select stock item %d: %w", id, err)
	}
	if !found {
		return nil, &custom_error.NotFoundError{Resource: "stock item", ID: id}
	}

	return &item, nil
}

// NameTaken reports whether another item of the sector already uses the name. excludeID 0 checks all items.
func (r *StockItemRepository) NameTaken(ctx context.Context, name, sectorCode string, excludeID int) (bool, error) {
	query := r.repository.GoquDBWrapper.
		From("stock_items").
		Where(goqu.Ex{"item_name": name, "sector_code": sectorCode})
	if excludeID > 0 {
		query = query.Where(goqu.C("id").Neq(excludeID))
	}

	count, err := query.CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check stock item name: %w", err)
	}

	return count > 0, nil
}

func (r *StockItemRepository) PersistStockItem(ctx context.Context, req StockItemRequest) (*models.StockItem, error) {
	query := r.repository.GoquDBWrapper.Insert("stock_items").
		Rows(goqu.Record{
			"item_name":    req.ItemName,
			"sector_code":  req.SectorCode,
			"vehicle_type": req.VehicleType,
			"part_number":  req.PartNumber,
		}).
		Returning(stockItemColumns...)

	var item models.StockItem
	if _, err := query.Executor().ScanStructContext(ctx, &item); err != nil {
		return nil, custom_error.FromPQ(err, "Stock item already exists for this sector")
	}

	return &item, nil
}

func (r *StockItemRepository) UpdateStockItem(ctx context.Context, id int, req StockItemRequest) (*models.StockItem, error) {
	query := r.repository.GoquDBWrapper.Update("stock_items").
		Set(goqu.Record{
			"item_name":    req.ItemName,
			"sector_code":  req.SectorCode,
			"vehicle_type": req.VehicleType,
			"part_number":  req.PartNumber,
			"updated_at":   goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.Ex{"id": id}).
		Returning(stockItemColumns...)

	var item models.StockItem
	found, err := query.Executor().ScanStructContext(ctx, &item)
	if err != nil {
		return nil, custom_error.FromPQ(err, "Stock item already exists for this sector")
	}
	if !found {
		return nil, &custom_error.NotFoundError{Resource: "stock item", ID: id}
	}

	return &item, nil
}

// DeleteStockItem removes the item; its overall and daily stock rows go with it (ON DELETE CASCADE).
func (r *StockItemRepository) DeleteStockItem(ctx context.Context, id int) (*models.StockItem, error) {
	query := r.repository.GoquDBWrapper.Delete("stock_items").
		Where(goqu.Ex{"id": id}).
		Returning(stockItemColumns...)

	var item models.StockItem
	found, err := query.Executor().ScanStructContext(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to delete stock item %d: %w", id, err)
	}
	if !found {
		return nil, &custom_error.NotFoundError{Resource: "stock item", ID: id}
	}

	return &item, nil
}
