package messages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-appointment-flow/internal/apperrors"
)

func TestParseRequestCreated(t *testing.T) {
	body := `{"Type":"Notification","MessageId":"m-1","Message":"{\"id\":\"r-1\",\"insureId\":\"12345\",\"scheduleId\":\"10\",\"countryISO\":\"PE\",\"state\":\"PENDING\"}"}`

	msg, err := ParseRequestCreated(body)

	require.NoError(t, err)
	assert.Equal(t, "r-1", msg.OriginID())
	assert.Equal(t, "12345", msg.InsureID)
	assert.Equal(t, 10, msg.ScheduleID.Int())
	assert.Equal(t, "PE", msg.CountryISO)
}

func TestParseRequestCreated_PrefersDynamoID(t *testing.T) {
	body := `{"Message":"{\"id\":\"r-1\",\"dynamoId\":\"r-2\",\"insureId\":\"12345\",\"scheduleId\":7,\"countryISO\":\"CL\"}"}`

	msg, err := ParseRequestCreated(body)

	require.NoError(t, err)
	assert.Equal(t, "r-2", msg.OriginID())
	assert.Equal(t, 7, msg.ScheduleID.Int())
}

func TestParseRequestCreated_Malformed(t *testing.T) {
	cases := map[string]string{
		"non-json body":        `not json`,
		"missing Message":      `{"Type":"Notification"}`,
		"non-json Message":     `{"Message":"oops"}`,
		"non-numeric schedule": `{"Message":"{\"id\":\"r\",\"scheduleId\":\"ten\"}"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRequestCreated(body)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrParse)
		})
	}
}

func TestParseAppointmentCreated_EventBridgeNative(t *testing.T) {
	body := `{"version":"0","detail-type":"Appointment Created","source":"appointments.source","detail":{"scheduleId":10,"insureId":"12345","countryISO":"PE","createdAt":"2025-01-02T03:04:05Z","dynamoId":"r-1","state":"COMPLETED"}}`

	msg, err := ParseAppointmentCreated(body)

	require.NoError(t, err)
	assert.Equal(t, "r-1", msg.DynamoID)
	assert.Equal(t, "COMPLETED", msg.State)
	assert.Equal(t, 10, msg.ScheduleID.Int())
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), msg.CreatedAt.UTC())
}

func TestParseAppointmentCreated_BridgedThroughSNS(t *testing.T) {
	wrappedEvent := `{"Message":"{\"detail\":{\"dynamoId\":\"r-1\",\"state\":\"CANCELED\"}}"}`
	bareDetail := `{"Message":"{\"dynamoId\":\"r-2\",\"state\":\"COMPLETED\",\"scheduleId\":\"3\"}"}`

	msg, err := ParseAppointmentCreated(wrappedEvent)
	require.NoError(t, err)
	assert.Equal(t, "r-1", msg.DynamoID)
	assert.Equal(t, "CANCELED", msg.State)

	msg, err = ParseAppointmentCreated(bareDetail)
	require.NoError(t, err)
	assert.Equal(t, "r-2", msg.DynamoID)
	assert.Equal(t, 3, msg.ScheduleID.Int())
}

func TestParseAppointmentCreated_Malformed(t *testing.T) {
	for _, body := range []string{`{{`, `{}`, `{"detail":null}`, `{"Message":"nope"}`} {
		_, err := ParseAppointmentCreated(body)
		assert.ErrorIs(t, err, apperrors.ErrParse, body)
	}
}

func TestFlexInt(t *testing.T) {
	var v struct {
		N FlexInt `json:"n"`
	}
	require.NoError(t, json.UnmarshalFromString(`{"n":" 42 "}`, &v))
	assert.Equal(t, 42, v.N.Int())
	require.NoError(t, json.UnmarshalFromString(`{"n":-3}`, &v))
	assert.Equal(t, -3, v.N.Int())
	assert.Error(t, json.UnmarshalFromString(`{"n":1.5}`, &v))
	assert.Error(t, json.UnmarshalFromString(`{"n":true}`, &v))
}
