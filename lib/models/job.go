package models

import (
	"fmt"
	"time"
)

// Job status constants. Transition rules live in lib/workflow.
const (
	JobStatusDraft      = "draft"
	JobStatusAssigned   = "assigned"
	JobStatusInProgress = "in_progress"
	JobStatusSubmitted  = "submitted"
	JobStatusApproved   = "approved"
	JobStatusRejected   = "rejected"
)

// Job represents a scheduled unit of field work based on field.jobs table.
// Site and template references are immutable after creation; the engineer
// reference is nullable and mutable.
type Job struct {
	ID                 int64      `json:"id"`
	Reference          string     `json:"reference"` // JOB-<YYYYMMDD>-<ID>, unique
	Title              string     `json:"title"`
	Description        *string    `json:"description"`
	SiteID             int64      `json:"site_id"`
	TemplateID         int64      `json:"template_id"`
	EngineerID         *int64     `json:"engineer_id"`
	CreatedBy          int64      `json:"created_by"`
	Status             string     `json:"status"`
	ScheduledDate      *time.Time `json:"scheduled_date"` // legacy date-only field
	ScheduledStartTime *time.Time `json:"scheduled_start_time"`
	ScheduledEndTime   *time.Time `json:"scheduled_end_time"`
	StartedAt          *time.Time `json:"started_at"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	ReviewNotes        *string    `json:"review_notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// FormatJobReference builds the human-readable job reference from the row id
// and the creation time, e.g. JOB-20260131-0042
func FormatJobReference(jobID int64, createdAt time.Time) string {
	return fmt.Sprintf("JOB-%s-%04d", createdAt.Format("20060102"), jobID)
}

// CreateJobRequest represents the request payload for creating a job.
// Timestamps arrive as strings so malformed values can be reported as
// validation errors instead of JSON decode failures.
type CreateJobRequest struct {
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	SiteID             int64   `json:"site_id"`
	TemplateID         int64   `json:"template_id"`
	EngineerID         *int64  `json:"engineer_id,omitempty"`
	ScheduledDate      *string `json:"scheduled_date,omitempty"`
	ScheduledStartTime *string `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *string `json:"scheduled_end_time,omitempty"`
}

// UpdateJobRequest represents the request payload for updating a job.
// nil means "leave unchanged"; EngineerID / schedule fields distinguish
// "unset" via the ClearX flags so JSON null can clear them.
type UpdateJobRequest struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	Status             *string `json:"status,omitempty"`
	EngineerID         *int64  `json:"engineer_id,omitempty"`
	ClearEngineer      bool    `json:"clear_engineer,omitempty"`
	ScheduledDate      *string `json:"scheduled_date,omitempty"`
	ScheduledStartTime *string `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *string `json:"scheduled_end_time,omitempty"`
}

// JobReviewAction constants for the review endpoints
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

// JobReviewAction represents the payload of approve/reject requests
type JobReviewAction struct {
	Action string  `json:"action"`
	Notes  *string `json:"notes,omitempty"`  // optional on approve
	Reason *string `json:"reason,omitempty"` // mandatory non-empty on reject
}

// JobRow is a job list item with embedded site and engineer summaries
type JobRow struct {
	ID                 int64            `json:"id"`
	Reference          string           `json:"reference"`
	Title              string           `json:"title"`
	Status             string           `json:"status"`
	Site               SiteSummary      `json:"site"`
	Engineer           *EngineerSummary `json:"engineer"`
	ScheduledDate      *time.Time       `json:"scheduled_date"`
	ScheduledStartTime *time.Time       `json:"scheduled_start_time"`
	ScheduledEndTime   *time.Time       `json:"scheduled_end_time"`
	SubmittedAt        *time.Time       `json:"submitted_at"`
	ReviewNotes        *string          `json:"review_notes"`
	CreatedAt          time.Time        `json:"created_at"`
}

// JobDetail is a job with embedded site, engineer and captures
type JobDetail struct {
	Job
	Site     Site             `json:"site"`
	Engineer *EngineerSummary `json:"engineer"`
	Captures []WorkCapture    `json:"captures"`
}

// JobListResponse represents the response for listing jobs
type JobListResponse struct {
	Jobs  []JobRow `json:"jobs"`
	Total int      `json:"total"`
}
