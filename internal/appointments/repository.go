package appointments

import (
	"context"
	"errors"
	"fmt"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicate is returned by Insert when a row for the same request already exists.
var ErrDuplicate = errors.New("appointment already recorded for request")

const mysqlDuplicateEntry = 1062

// GormWriter writes appointments to one country's database.
type GormWriter struct {
	db *gorm.DB
}

func NewGormWriter(db *gorm.DB) *GormWriter {
	return &GormWriter{db: db}
}

// Insert creates a and returns it with the generated id and timestamps filled in.
func (w *GormWriter) Insert(ctx context.Context, a *Appointment) (*Appointment, error) {
	if err := w.db.WithContext(ctx).Create(a).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, fmt.Errorf("insert appointment for %s: %w", a.DynamoID, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return a, nil
}

// FindByDynamoID returns the appointment created for request dynamoID, or (nil, nil).
func (w *GormWriter) FindByDynamoID(ctx context.Context, dynamoID string) (*Appointment, error) {
	var a Appointment
	err := w.db.WithContext(ctx).Where("dynamo_id = ?", dynamoID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &a, nil
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
