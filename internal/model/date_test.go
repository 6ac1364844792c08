package model_test

import (
	"testing"
	"time"

	"order-management-server/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_MarshalJSON(t *testing.T) {
	date := model.NewDate(2024, time.March, 8)

	data, err := date.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-08"`, string(data))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var date model.Date
	require.NoError(t, date.UnmarshalJSON([]byte(`"2024-03-08"`)))
	assert.Equal(t, model.NewDate(2024, time.March, 8), date)

	assert.Error(t, date.UnmarshalJSON([]byte(`2024-03-08`)))
	assert.Error(t, date.UnmarshalJSON([]byte(`"08.03.2024"`)))
}

func TestDate_ScanDropsTimeOfDay(t *testing.T) {
	var date model.Date

	moscow := time.FixedZone("MSK", 3*60*60)
	require.NoError(t, date.Scan(time.Date(2024, time.March, 8, 15, 4, 5, 0, moscow)))
	assert.Equal(t, model.NewDate(2024, time.March, 8), date)

	require.NoError(t, date.Scan([]byte("2024-03-08")))
	assert.Equal(t, model.NewDate(2024, time.March, 8), date)
}

func TestDate_Value(t *testing.T) {
	date := model.NewDate(2024, time.March, 8)

	value, err := date.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", value)
}
