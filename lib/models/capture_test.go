package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateCaptureKey(t *testing.T) {
	//Act
	key := GenerateCaptureKey(12, 3, CaptureSidePre, "kitchen extract.jpg")

	//Assert
	assert.True(t, strings.HasPrefix(key, "jobs/12/areas/3/pre/"))
	assert.True(t, strings.HasSuffix(key, "_kitchen_extract.jpg"))
	assert.NotContains(t, key, " ")

	// Same file name yields distinct keys on re-upload
	assert.NotEqual(t, key, GenerateCaptureKey(12, 3, CaptureSidePre, "kitchen extract.jpg"))
}

func Test_ThumbnailKeyFor(t *testing.T) {
	assert.Equal(t, "jobs/12/areas/3/pre/ab12cd34_a_thumb.jpg",
		ThumbnailKeyFor("jobs/12/areas/3/pre/ab12cd34_a.jpg"))
}

func Test_ValidateImageType(t *testing.T) {
	assert.True(t, ValidateImageType("photo.jpg"))
	assert.True(t, ValidateImageType("photo.JPEG"))
	assert.True(t, ValidateImageType("photo.png"))
	assert.True(t, ValidateImageType("photo.webp"))
	assert.True(t, ValidateImageType("photo.heic"))
	assert.False(t, ValidateImageType("photo.gif"))
	assert.False(t, ValidateImageType("document.pdf"))
	assert.False(t, ValidateImageType("photo"))
}

func Test_IsValidCaptureSide(t *testing.T) {
	assert.True(t, IsValidCaptureSide(CaptureSidePre))
	assert.True(t, IsValidCaptureSide(CaptureSidePost))
	assert.False(t, IsValidCaptureSide("during"))
	assert.False(t, IsValidCaptureSide(""))
}

func Test_WorkCapture_ImageHelpers(t *testing.T) {
	//Arrange
	url := "jobs/1/areas/1/pre/a.jpg"
	capture := WorkCapture{}

	//Assert
	assert.False(t, capture.HasPreImage())
	assert.False(t, capture.HasPostImage())

	capture.PreImageURL = &url
	assert.True(t, capture.HasPreImage())
	assert.False(t, capture.HasPostImage())
}
