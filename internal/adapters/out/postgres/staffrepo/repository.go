package staffrepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/staff"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM. User edits happen
// outside the hot path, so the repository works straight off the base
// connection rather than a unit of work.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new user to the database.
func (r *GormUserRepository) Add(ctx context.Context, user *staff.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(user)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*staff.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return userToDomain(dto)
}

// GetByUsername retrieves a user by login name.
func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*staff.User, error) {
	if username == "" {
		return nil, errs.NewValueIsRequiredError("username")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", username)
		}
		return nil, err
	}

	return userToDomain(dto)
}

// GetAll retrieves every user.
func (r *GormUserRepository) GetAll(ctx context.Context) ([]*staff.User, error) {
	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Order("username").Find(&dtos).Error; err != nil {
		return nil, err
	}

	users := make([]*staff.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := userToDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// GormTimeRecordRepository implements TimeRecordRepository using GORM.
type GormTimeRecordRepository struct {
	db *gorm.DB
}

// NewGormTimeRecordRepository creates a new GORM time record repository.
func NewGormTimeRecordRepository(db *gorm.DB) *GormTimeRecordRepository {
	return &GormTimeRecordRepository{db: db}
}

// Add saves a new time record to the database.
func (r *GormTimeRecordRepository) Add(ctx context.Context, record *staff.TimeRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing time record, normally the clock-out stamp.
func (r *GormTimeRecordRepository) Update(ctx context.Context, record *staff.TimeRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&TimeRecordDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetAllOpen retrieves every record without a clock-out stamp.
func (r *GormTimeRecordRepository) GetAllOpen(ctx context.Context) ([]*staff.TimeRecord, error) {
	var dtos []TimeRecordDTO
	if err := r.db.WithContext(ctx).Where("clock_out IS NULL").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*staff.TimeRecord, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := recordToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
