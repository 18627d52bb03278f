package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Capture side constants
const (
	CaptureSidePre  = "pre"
	CaptureSidePost = "post"
)

// WorkCapture is the per-area record of pre/post photographic evidence for
// one job, based on field.work_captures table. One row per (job, area) pair,
// created with the job and deleted only via the job's cascade. Area name,
// order and guidance are denormalized from the template area at job-creation
// time so later template edits cannot change them.
type WorkCapture struct {
	ID               int64      `json:"id"`
	JobID            int64      `json:"job_id"`
	TemplateAreaID   int64      `json:"template_area_id"`
	AreaName         string     `json:"area_name"`
	OrderIndex       int        `json:"order_index"`
	PhotoGuidance    *string    `json:"photo_guidance"`
	PreImageURL      *string    `json:"pre_image_url"`
	PreThumbnailURL  *string    `json:"pre_thumbnail_url"`
	PreCapturedAt    *time.Time `json:"pre_captured_at"`
	PostImageURL     *string    `json:"post_image_url"`
	PostThumbnailURL *string    `json:"post_thumbnail_url"`
	PostCapturedAt   *time.Time `json:"post_captured_at"`
	Notes            *string    `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasPreImage reports whether the pre image has been captured
func (c *WorkCapture) HasPreImage() bool {
	return c.PreImageURL != nil
}

// HasPostImage reports whether the post image has been captured
func (c *WorkCapture) HasPostImage() bool {
	return c.PostImageURL != nil
}

// CaptureUploadRequest represents the request payload for a presigned upload URL
type CaptureUploadRequest struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size,omitempty"`
}

// CaptureUploadResponse carries the presigned PUT URLs for image and thumbnail
type CaptureUploadResponse struct {
	UploadURL          string `json:"upload_url"`
	ThumbnailUploadURL string `json:"thumbnail_upload_url"`
	S3Key              string `json:"s3_key"`
	ThumbnailKey       string `json:"thumbnail_key"`
	ExpiresAt          string `json:"expires_at"`
}

// CaptureConfirmRequest confirms a completed upload for a capture side
type CaptureConfirmRequest struct {
	S3Key        string  `json:"s3_key"`
	ThumbnailKey *string `json:"thumbnail_key,omitempty"`
}

// UpdateCaptureNotesRequest updates the engineer notes on a capture
type UpdateCaptureNotesRequest struct {
	Notes *string `json:"notes"`
}

// CaptureListResponse is the response for listing a job's captures with the
// job-level completion percentage (areas with a post image, rounded)
type CaptureListResponse struct {
	Captures             []WorkCapture `json:"captures"`
	CompletionPercentage int           `json:"completion_percentage"`
}

// GenerateCaptureKey creates the S3 key for a capture image upload. The
// uuid fragment keeps re-uploads of the same file name from colliding.
func GenerateCaptureKey(jobID, areaID int64, side, fileName string) string {
	cleanFileName := strings.ReplaceAll(fileName, " ", "_")
	return fmt.Sprintf("jobs/%d/areas/%d/%s/%s_%s",
		jobID, areaID, side, uuid.New().String()[:8], cleanFileName)
}

// ThumbnailKeyFor derives the thumbnail object key from an image key
func ThumbnailKeyFor(s3Key string) string {
	ext := filepath.Ext(s3Key)
	return strings.TrimSuffix(s3Key, ext) + "_thumb" + ext
}

// ValidateImageType checks if the file extension is an allowed capture image type
func ValidateImageType(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))

	allowedExtensions := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true,
	}

	return allowedExtensions[ext]
}

// IsValidCaptureSide reports whether side is "pre" or "post"
func IsValidCaptureSide(side string) bool {
	return side == CaptureSidePre || side == CaptureSidePost
}
