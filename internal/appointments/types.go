package appointments

import (
	"time"

	"github.com/imrishuroy/go-appointment-flow/internal/country"
)

// StateCompleted is the only state a country processor writes.
const StateCompleted = "COMPLETED"

// Appointment is a row in a country's appointment table.
type Appointment struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	InsureID   string       `gorm:"column:insure_id;type:char(5);not null" json:"insureId"`
	ScheduleID int          `gorm:"column:schedule_id;not null" json:"scheduleId"`
	CountryISO country.Code `gorm:"column:country_iso;size:2;not null" json:"countryISO"`
	State      string       `gorm:"column:state;size:20;not null" json:"state"`
	DynamoID   string       `gorm:"column:dynamo_id;type:varchar(36);uniqueIndex;not null" json:"dynamoId"` // originating request id
	CreatedAt  time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Appointment) TableName() string { return "appointment" }

// FulfillInput is the part of a request-created message a processor acts on.
type FulfillInput struct {
	InsureID   string
	ScheduleID int
	CountryISO string
	DynamoID   string
}
