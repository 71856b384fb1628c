package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"05.03.2024"`), &back))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-11-02", d.String())

	require.NoError(t, d.Scan([]byte("2023-01-31T00:00:00Z")))
	assert.Equal(t, "2023-01-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDate_Quarter(t *testing.T) {
	assert.Equal(t, 1, NewDate(2024, time.January, 1).Quarter())
	assert.Equal(t, 1, NewDate(2024, time.March, 31).Quarter())
	assert.Equal(t, 2, NewDate(2024, time.April, 1).Quarter())
	assert.Equal(t, 3, NewDate(2024, time.September, 30).Quarter())
	assert.Equal(t, 4, NewDate(2024, time.December, 31).Quarter())
}
