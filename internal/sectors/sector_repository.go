package sectors

import (
	"context"
	"fmt"

	"central360/internal/repository"
	custom_error "central360/pkg/errors"
	"central360/pkg/metadata"
	"central360/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type SectorRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SectorRepository {
	return &SectorRepository{repository: r}
}

func (r *SectorRepository) GetSectors(ctx context.Context) ([]models.Sector, error) {
	sectors := []models.Sector{}
	err := r.repository.GoquDBWrapper.
		From("sectors").
		Select("code", "name", "created_at", "updated_at").
		Order(goqu.I("code").Asc()).
		ScanStructsContext(ctx, &sectors)
	if err != nil {
		return nil, fmt.Errorf("unable to select sectors from database: %w", err)
	}

	return sectors, nil
}

func (r *SectorRepository) SectorExists(ctx context.Context, code metadata.SectorCode) (bool, error) {
	count, err := r.repository.GoquDBWrapper.
		From("sectors").
		Where(goqu.Ex{"code": code.String()}).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check sector %s: %w", code, err)
	}

	return count > 0, nil
}

func (r *SectorRepository) PersistSector(ctx context.Context, code metadata.SectorCode, name string) (*models.Sector, error) {
	query := r.repository.GoquDBWrapper.Insert("sectors").
		Rows(goqu.Record{
			"code": code.String(),
			"name": name,
		}).
		Returning("code", "name", "created_at", "updated_at")

	var sector models.Sector
	if _, err := query.Executor().ScanStructContext(ctx, &sector); err != nil {
		return nil, custom_error.FromPQ(err, fmt.Sprintf("sector code %s already exists", code))
	}

	return &sector, nil
}

func (r *SectorRepository) HasStockItems(ctx context.Context, code metadata.SectorCode) (bool, error) {
	count, err := r.repository.GoquDBWrapper.
		From("stock_items").
		Where(goqu.Ex{"sector_code": code.String()}).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count stock items of sector %s: %w", code, err)
	}

	return count > 0, nil
}

// DeleteSector reports false when no sector with the code exists.
func (r *SectorRepository) DeleteSector(ctx context.Context, code metadata.SectorCode) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("sectors").
		Where(goqu.Ex{"code": code.String()}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return false, custom_error.FromPQ(err, fmt.Sprintf("failed to delete sector %s", code))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete sector %s: %w", code, err)
	}

	return affected > 0, nil
}
