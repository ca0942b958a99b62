package tablerepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTableRepository implements TableRepository using GORM.
type GormTableRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTableRepository creates a new GORM table repository.
func NewGormTableRepository(db *gorm.DB, tracker aggregateTracker) *GormTableRepository {
	return &GormTableRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new table to the database.
func (r *GormTableRepository) Add(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing table to the database. The waiter and order
// references are written even when nil, so Select lists every column.
func (r *GormTableRepository) Update(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TableDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a table by ID.
func (r *GormTableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TableDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every table ordered by table number.
func (r *GormTableRepository) GetAll(ctx context.Context) ([]*table.Table, error) {
	var dtos []TableDTO
	if err := r.db.WithContext(ctx).Order("number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tables := make([]*table.Table, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}
