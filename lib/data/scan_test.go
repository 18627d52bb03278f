package data

import (
	"testing"
	"time"

	"ventnav/lib/workflow"

	"github.com/stretchr/testify/assert"
)

func Test_ParseTimestamp_RFC3339(t *testing.T) {
	//Act
	parsed, err := parseTimestamp("scheduled_start_time", "2026-03-10T08:00:00Z")

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), *parsed)
}

func Test_ParseTimestamp_WithoutZone(t *testing.T) {
	//Act
	parsed, err := parseTimestamp("scheduled_start_time", "2026-03-10T08:00:00")

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, 8, parsed.Hour())
}

func Test_ParseTimestamp_Empty(t *testing.T) {
	//Act
	parsed, err := parseTimestamp("scheduled_start_time", "")

	//Assert
	assert.NoError(t, err)
	assert.Nil(t, parsed)
}

func Test_ParseTimestamp_Malformed(t *testing.T) {
	//Act
	_, err := parseTimestamp("scheduled_start_time", "10/03/2026 08:00")

	//Assert
	assert.EqualError(t, err, "invalid scheduled_start_time format")
	assert.IsType(t, &workflow.ValidationError{}, err)
}

func Test_ParseDateOnly(t *testing.T) {
	//Act
	parsed, err := parseDateOnly("scheduled_date", "2026-03-10")
	_, badErr := parseDateOnly("scheduled_date", "2026-03-10T08:00:00Z")

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *parsed)
	assert.EqualError(t, badErr, "invalid scheduled_date format")
}

func Test_NullConversions_RoundTrip(t *testing.T) {
	//Arrange
	value := "duct survey"
	id := int64(12)
	when := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	//Assert
	assert.Equal(t, &value, nullStringPtr(stringOrNull(&value)))
	assert.Nil(t, nullStringPtr(stringOrNull(nil)))
	assert.Equal(t, &id, nullInt64Ptr(int64OrNull(&id)))
	assert.Nil(t, nullInt64Ptr(int64OrNull(nil)))
	assert.Equal(t, &when, nullTimePtr(timeOrNull(&when)))
	assert.Nil(t, nullTimePtr(timeOrNull(nil)))
}
