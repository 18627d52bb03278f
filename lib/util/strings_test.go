package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TrimToNull(t *testing.T) {
	//Arrange
	padded := "  access via rear car park  "
	blank := "   "

	//Act + Assert
	assert.Nil(t, TrimToNull(nil))
	assert.Nil(t, TrimToNull(&blank))
	assert.Equal(t, "access via rear car park", *TrimToNull(&padded))
}

func Test_ConditionalString(t *testing.T) {
	assert.Equal(t, "yes", ConditionalString(true, "yes", "no"))
	assert.Equal(t, "no", ConditionalString(false, "yes", "no"))
}
