package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_FormatJobReference(t *testing.T) {
	//Arrange
	createdAt := time.Date(2026, 1, 31, 14, 5, 0, 0, time.UTC)

	//Act + Assert
	assert.Equal(t, "JOB-20260131-0042", FormatJobReference(42, createdAt))
	assert.Equal(t, "JOB-20260131-0007", FormatJobReference(7, createdAt))
	// IDs wider than four digits are not truncated
	assert.Equal(t, "JOB-20260131-12345", FormatJobReference(12345, createdAt))
}
