// Package staffrepo provides data transfer objects and mapping functions for
// staff users and time-clock records.
package staffrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting staff users.
type UserDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username      string    `gorm:"uniqueIndex"`
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          int
	ContactNumber string
	Active        bool
}

// TableName specifies the database table name for staff users.
func (UserDTO) TableName() string {
	return "users"
}

// TimeRecordDTO represents one shift on the time clock. TotalHours is only
// set once the record is closed.
type TimeRecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	ClockIn    time.Time
	ClockOut   *time.Time `gorm:"index"`
	TotalHours float64
}

// TableName specifies the database table name for time records.
func (TimeRecordDTO) TableName() string {
	return "time_records"
}

func userFromDomain(user *staff.User) UserDTO {
	return UserDTO{
		ID:            user.ID().Bytes(),
		Username:      user.Username(),
		PasswordHash:  user.PasswordHash(),
		FirstName:     user.FirstName(),
		LastName:      user.LastName(),
		Role:          int(user.Role()),
		ContactNumber: user.ContactNumber(),
		Active:        user.IsActive(),
	}
}

func userToDomain(dto UserDTO) (*staff.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return staff.NewUser(id, dto.Username, dto.PasswordHash, dto.FirstName,
		dto.LastName, staff.Role(dto.Role), dto.ContactNumber, dto.Active)
}

func recordFromDomain(record *staff.TimeRecord) TimeRecordDTO {
	return TimeRecordDTO{
		ID:         record.ID().Bytes(),
		UserID:     record.UserID().Bytes(),
		ClockIn:    record.ClockIn(),
		ClockOut:   record.ClockOut(),
		TotalHours: record.TotalHours(),
	}
}

func recordToDomain(dto TimeRecordDTO) (*staff.TimeRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return staff.RestoreTimeRecord(id, userID, dto.ClockIn, dto.ClockOut)
}
