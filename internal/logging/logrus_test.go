package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("not-a-level").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("").GetLevel())
}

func TestLogErrorFields(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(logger, "requests", "CreateRequest", map[string]string{"id": "abc"}, errors.New("put item: throttled"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "put item: throttled", entry.Message)
	assert.Equal(t, "requests", entry.Data["component"])
	assert.Equal(t, "CreateRequest", entry.Data["op"])
	assert.Contains(t, entry.Data, "data")
}
