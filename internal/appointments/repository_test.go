package appointments

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/imrishuroy/go-appointment-flow/internal/config"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	dup := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'r-1' for key 'idx_appointment_dynamo_id'"}
	other := &mysqlDriver.MySQLError{Number: 1146, Message: "Table doesn't exist"}

	assert.True(t, isDuplicateKeyErr(dup))
	assert.True(t, isDuplicateKeyErr(fmt.Errorf("create: %w", dup)))
	assert.True(t, isDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.False(t, isDuplicateKeyErr(other))
	assert.False(t, isDuplicateKeyErr(errors.New("boom")))
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.CountryDB{Host: "db.local", Port: "3307", User: "app", Password: "secret", Name: "appointment_pe"})

	cfg, err := mysqlDriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "secret", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db.local:3307", cfg.Addr)
	assert.Equal(t, "appointment_pe", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestAppointmentTableName(t *testing.T) {
	assert.Equal(t, "appointment", Appointment{}.TableName())
}

// TestGormWriter_MySQL runs against a real database:
// INTEGRATION_TESTS=1 MYSQL_TEST_DSN='root:pass@tcp(localhost:3306)/appointment_test?parseTime=true'
func TestGormWriter_MySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if os.Getenv("INTEGRATION_TESTS") == "" || dsn == "" {
		t.Skip("set INTEGRATION_TESTS and MYSQL_TEST_DSN to run")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Ping(ctx, db))

	w := NewGormWriter(db)
	id := uuid.NewString()

	saved, err := w.Insert(ctx, &Appointment{InsureID: "12345", ScheduleID: 4, CountryISO: country.PE, State: StateCompleted, DynamoID: id})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	_, err = w.Insert(ctx, &Appointment{InsureID: "12345", ScheduleID: 4, CountryISO: country.PE, State: StateCompleted, DynamoID: id})
	require.ErrorIs(t, err, ErrDuplicate)

	found, err := w.FindByDynamoID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, saved.ID, found.ID)

	missing, err := w.FindByDynamoID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
