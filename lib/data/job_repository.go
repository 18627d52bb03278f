package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ventnav/lib/auth"
	"ventnav/lib/models"
	"ventnav/lib/util"
	"ventnav/lib/workflow"

	"github.com/sirupsen/logrus"
)

// JobRepository defines the interface for job data operations. Every
// mutating method serializes on the job row (SELECT ... FOR UPDATE) so
// concurrent submits, reviews and capture writes cannot both succeed.
type JobRepository interface {
	CreateJob(ctx context.Context, createdBy int64, req *models.CreateJobRequest) (*models.JobDetail, error)
	GetJob(ctx context.Context, jobID int64) (*models.JobDetail, error)
	GetJobs(ctx context.Context, filters map[string]string) ([]models.JobRow, error)
	UpdateJob(ctx context.Context, jobID, userID int64, canReview bool, req *models.UpdateJobRequest) (*models.JobDetail, error)
	DeleteJob(ctx context.Context, jobID int64) ([]string, error)
	SubmitForReview(ctx context.Context, jobID, engineerID int64) (*models.JobDetail, error)
	ReviewJob(ctx context.Context, jobID, reviewerID int64, action *models.JobReviewAction) (*models.JobDetail, error)
}

// JobDao implements the JobRepository interface
type JobDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// CreateJob creates a job and its capture rows atomically: one row per
// area of the template, snapshotting area name, order and guidance at
// creation time.
func (dao *JobDao) CreateJob(ctx context.Context, createdBy int64, req *models.CreateJobRequest) (*models.JobDetail, error) {
	scheduledDate, err := parseDateOnly("scheduled_date", deref(req.ScheduledDate))
	if err != nil {
		return nil, err
	}
	startTime, err := parseTimestamp("scheduled_start_time", deref(req.ScheduledStartTime))
	if err != nil {
		return nil, err
	}
	endTime, err := parseTimestamp("scheduled_end_time", deref(req.ScheduledEndTime))
	if err != nil {
		return nil, err
	}

	if err := workflow.ValidateSchedule(workflow.Schedule{
		EngineerID:         req.EngineerID,
		ScheduledDate:      scheduledDate,
		ScheduledStartTime: startTime,
		ScheduledEndTime:   endTime,
	}, time.Now()); err != nil {
		return nil, err
	}

	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var siteExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM field.sites WHERE id = $1)`, req.SiteID).Scan(&siteExists); err != nil {
		return nil, fmt.Errorf("failed to check site: %w", err)
	}
	if !siteExists {
		return nil, workflow.NewNotFoundError("site not found")
	}

	var templateActive bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_active FROM field.templates WHERE id = $1`, req.TemplateID).Scan(&templateActive)
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("template not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check template: %w", err)
	}
	if !templateActive {
		return nil, workflow.NewValidationError("template is not active")
	}

	if req.EngineerID != nil {
		if err := checkEngineer(ctx, tx, *req.EngineerID); err != nil {
			return nil, err
		}
	}

	// Reserve the id up front so the unique reference can be derived from it
	var jobID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT nextval(pg_get_serial_sequence('field.jobs', 'id'))`).Scan(&jobID); err != nil {
		return nil, fmt.Errorf("failed to reserve job id: %w", err)
	}

	now := time.Now()
	reference := models.FormatJobReference(jobID, now)
	status := workflow.InitialStatus(req.EngineerID)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO field.jobs (
			id, reference, title, description, site_id, template_id, engineer_id,
			created_by, status, scheduled_date, scheduled_start_time, scheduled_end_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		jobID, reference, strings.TrimSpace(req.Title), stringOrNull(util.TrimToNull(req.Description)),
		req.SiteID, req.TemplateID, int64OrNull(req.EngineerID),
		createdBy, status, timeOrNull(scheduledDate), timeOrNull(startTime), timeOrNull(endTime),
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to create job")
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO field.work_captures (job_id, template_area_id, area_name, order_index, photo_guidance)
		SELECT $1, id, name, order_index, photo_guidance
		FROM field.template_areas
		WHERE template_id = $2`,
		jobID, req.TemplateID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to create work captures")
		return nil, fmt.Errorf("failed to create work captures: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job creation: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"job_id":    jobID,
		"reference": reference,
		"status":    status,
	}).Info("Job created")

	return dao.GetJob(ctx, jobID)
}

// GetJob retrieves a job with its embedded site, engineer summary and captures
func (dao *JobDao) GetJob(ctx context.Context, jobID int64) (*models.JobDetail, error) {
	query := `
		SELECT j.id, j.reference, j.title, j.description, j.site_id, j.template_id,
			   j.engineer_id, j.created_by, j.status, j.scheduled_date,
			   j.scheduled_start_time, j.scheduled_end_time, j.started_at,
			   j.submitted_at, j.reviewed_at, j.review_notes, j.created_at, j.updated_at,
			   s.id, s.client_name, s.site_name, s.address_line_1, s.address_line_2,
			   s.city, s.postcode, s.contact_name, s.contact_phone, s.contact_email,
			   s.notes, s.created_at, s.updated_at,
			   e.full_name
		FROM field.jobs j
		JOIN field.sites s ON j.site_id = s.id
		LEFT JOIN iam.users e ON j.engineer_id = e.id
		WHERE j.id = $1`

	var detail models.JobDetail
	var description, reviewNotes sql.NullString
	var engineerID sql.NullInt64
	var scheduledDate, startTime, endTime, startedAt, submittedAt, reviewedAt sql.NullTime
	var siteName, addressLine2, contactName, contactPhone, contactEmail, siteNotes sql.NullString
	var engineerName sql.NullString

	err := dao.DB.QueryRowContext(ctx, query, jobID).Scan(
		&detail.ID, &detail.Reference, &detail.Title, &description, &detail.SiteID, &detail.TemplateID,
		&engineerID, &detail.CreatedBy, &detail.Status, &scheduledDate,
		&startTime, &endTime, &startedAt,
		&submittedAt, &reviewedAt, &reviewNotes, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.Site.ID, &detail.Site.ClientName, &siteName, &detail.Site.AddressLine1, &addressLine2,
		&detail.Site.City, &detail.Site.Postcode, &contactName, &contactPhone, &contactEmail,
		&siteNotes, &detail.Site.CreatedAt, &detail.Site.UpdatedAt,
		&engineerName,
	)
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("job not found")
	}
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get job")
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	detail.Description = nullStringPtr(description)
	detail.EngineerID = nullInt64Ptr(engineerID)
	detail.ScheduledDate = nullTimePtr(scheduledDate)
	detail.ScheduledStartTime = nullTimePtr(startTime)
	detail.ScheduledEndTime = nullTimePtr(endTime)
	detail.StartedAt = nullTimePtr(startedAt)
	detail.SubmittedAt = nullTimePtr(submittedAt)
	detail.ReviewedAt = nullTimePtr(reviewedAt)
	detail.ReviewNotes = nullStringPtr(reviewNotes)
	detail.Site.SiteName = nullStringPtr(siteName)
	detail.Site.AddressLine2 = nullStringPtr(addressLine2)
	detail.Site.ContactName = nullStringPtr(contactName)
	detail.Site.ContactPhone = nullStringPtr(contactPhone)
	detail.Site.ContactEmail = nullStringPtr(contactEmail)
	detail.Site.Notes = nullStringPtr(siteNotes)

	if detail.EngineerID != nil && engineerName.Valid {
		detail.Engineer = &models.EngineerSummary{ID: *detail.EngineerID, FullName: engineerName.String}
	}

	captures, err := queryJobCaptures(ctx, dao.DB, jobID)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get job captures")
		return nil, err
	}
	detail.Captures = captures

	return &detail, nil
}

// GetJobs retrieves job list rows with optional status and engineer filters
func (dao *JobDao) GetJobs(ctx context.Context, filters map[string]string) ([]models.JobRow, error) {
	baseQuery := `
		SELECT j.id, j.reference, j.title, j.status, j.scheduled_date,
			   j.scheduled_start_time, j.scheduled_end_time, j.submitted_at,
			   j.review_notes, j.created_at,
			   s.id, s.client_name, s.site_name, s.address_line_1, s.address_line_2,
			   s.city, s.postcode,
			   e.id, e.full_name
		FROM field.jobs j
		JOIN field.sites s ON j.site_id = s.id
		LEFT JOIN iam.users e ON j.engineer_id = e.id`

	args := []interface{}{}
	conditions := []string{}
	argIndex := 1

	if status := filters["status"]; status != "" {
		conditions = append(conditions, fmt.Sprintf("j.status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}

	if engineerID := filters["engineer_id"]; engineerID != "" {
		conditions = append(conditions, fmt.Sprintf("j.engineer_id = $%d", argIndex))
		args = append(args, engineerID)
		argIndex++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filters["sort"] {
	case "scheduled":
		baseQuery += " ORDER BY j.scheduled_start_time NULLS LAST, j.created_at DESC"
	default:
		baseQuery += " ORDER BY j.created_at DESC"
	}

	rows, err := dao.DB.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get jobs")
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.JobRow
	for rows.Next() {
		var row models.JobRow
		var scheduledDate, startTime, endTime, submittedAt sql.NullTime
		var reviewNotes, siteName, addressLine2 sql.NullString
		var engineerID sql.NullInt64
		var engineerName sql.NullString

		err := rows.Scan(
			&row.ID, &row.Reference, &row.Title, &row.Status, &scheduledDate,
			&startTime, &endTime, &submittedAt,
			&reviewNotes, &row.CreatedAt,
			&row.Site.ID, &row.Site.ClientName, &siteName, &row.Site.AddressLine1, &addressLine2,
			&row.Site.City, &row.Site.Postcode,
			&engineerID, &engineerName,
		)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan job row")
			continue
		}

		row.ScheduledDate = nullTimePtr(scheduledDate)
		row.ScheduledStartTime = nullTimePtr(startTime)
		row.ScheduledEndTime = nullTimePtr(endTime)
		row.SubmittedAt = nullTimePtr(submittedAt)
		row.ReviewNotes = nullStringPtr(reviewNotes)
		row.Site.SiteName = nullStringPtr(siteName)
		row.Site.AddressLine2 = nullStringPtr(addressLine2)
		if engineerID.Valid {
			row.Engineer = &models.EngineerSummary{ID: engineerID.Int64, FullName: engineerName.String}
		}

		jobs = append(jobs, row)
	}

	return jobs, nil
}

// UpdateJob applies a partial update under the job row lock. Schedule
// validation re-runs whenever the schedule or engineer changes; explicit
// status sets go through the lifecycle guards.
func (dao *JobDao) UpdateJob(ctx context.Context, jobID, userID int64, canReview bool, req *models.UpdateJobRequest) (*models.JobDetail, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := lockJob(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if req.Title != nil {
		if trimmed := strings.TrimSpace(*req.Title); trimmed != "" {
			job.Title = trimmed
		}
	}
	if req.Description != nil {
		job.Description = util.TrimToNull(req.Description)
	}

	scheduleTouched := false
	if req.ScheduledDate != nil {
		parsed, err := parseDateOnly("scheduled_date", *req.ScheduledDate)
		if err != nil {
			return nil, err
		}
		job.ScheduledDate = parsed
		scheduleTouched = true
	}
	if req.ScheduledStartTime != nil {
		parsed, err := parseTimestamp("scheduled_start_time", *req.ScheduledStartTime)
		if err != nil {
			return nil, err
		}
		job.ScheduledStartTime = parsed
		scheduleTouched = true
	}
	if req.ScheduledEndTime != nil {
		parsed, err := parseTimestamp("scheduled_end_time", *req.ScheduledEndTime)
		if err != nil {
			return nil, err
		}
		job.ScheduledEndTime = parsed
		scheduleTouched = true
	}

	engineerTouched := false
	if req.ClearEngineer {
		job.EngineerID = nil
		job.Status = workflow.StatusAfterEngineerCleared(job.Status)
		engineerTouched = true
	} else if req.EngineerID != nil {
		if err := checkEngineer(ctx, tx, *req.EngineerID); err != nil {
			return nil, err
		}
		job.EngineerID = req.EngineerID
		engineerTouched = true
	}

	if req.Status != nil {
		next := *req.Status

		capturesComplete := false
		if next == models.JobStatusSubmitted {
			captures, err := queryJobCapturesTx(ctx, tx, jobID)
			if err != nil {
				return nil, err
			}
			capturesComplete = workflow.IsCompleteForReview(captures)
		}

		if err := workflow.ValidateStatusChange(job.Status, next, job.EngineerID != nil, capturesComplete, canReview); err != nil {
			return nil, err
		}

		if next != job.Status {
			switch next {
			case models.JobStatusSubmitted:
				job.SubmittedAt = &now
			case models.JobStatusInProgress:
				if job.StartedAt == nil {
					job.StartedAt = &now
				}
			}
			job.Status = next
		}
	} else if engineerTouched && job.EngineerID != nil && job.Status == models.JobStatusDraft {
		job.Status = models.JobStatusAssigned
	}

	if scheduleTouched || engineerTouched || (req.Status != nil && job.Status == models.JobStatusAssigned) {
		if err := workflow.ValidateSchedule(workflow.Schedule{
			EngineerID:         job.EngineerID,
			ScheduledDate:      job.ScheduledDate,
			ScheduledStartTime: job.ScheduledStartTime,
			ScheduledEndTime:   job.ScheduledEndTime,
		}, now); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE field.jobs
		SET title = $1, description = $2, engineer_id = $3, status = $4,
			scheduled_date = $5, scheduled_start_time = $6, scheduled_end_time = $7,
			started_at = $8, submitted_at = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $10`,
		job.Title, stringOrNull(job.Description), int64OrNull(job.EngineerID), job.Status,
		timeOrNull(job.ScheduledDate), timeOrNull(job.ScheduledStartTime), timeOrNull(job.ScheduledEndTime),
		timeOrNull(job.StartedAt), timeOrNull(job.SubmittedAt), jobID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to update job")
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job update: %w", err)
	}

	return dao.GetJob(ctx, jobID)
}

// DeleteJob deletes a job and its captures, returning the stored S3 keys
// so the caller can clean up the objects best-effort.
func (dao *JobDao) DeleteJob(ctx context.Context, jobID int64) ([]string, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockJob(ctx, tx, jobID); err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT pre_image_url, pre_thumbnail_url, post_image_url, post_thumbnail_url
		FROM field.work_captures
		WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect capture keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var pre, preThumb, post, postThumb sql.NullString
		if err := rows.Scan(&pre, &preThumb, &post, &postThumb); err != nil {
			continue
		}
		for _, ns := range []sql.NullString{pre, preThumb, post, postThumb} {
			if ns.Valid && ns.String != "" {
				keys = append(keys, ns.String)
			}
		}
	}
	rows.Close()

	// No orphan captures permitted
	if _, err := tx.ExecContext(ctx, `DELETE FROM field.work_captures WHERE job_id = $1`, jobID); err != nil {
		return nil, fmt.Errorf("failed to delete captures: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM field.jobs WHERE id = $1`, jobID); err != nil {
		return nil, fmt.Errorf("failed to delete job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job deletion: %w", err)
	}

	dao.Logger.WithField("job_id", jobID).Info("Job deleted")
	return keys, nil
}

// SubmitForReview moves an assigned/in_progress job to submitted once every
// capture has both images. Only the assigned engineer may submit.
func (dao *JobDao) SubmitForReview(ctx context.Context, jobID, engineerID int64) (*models.JobDetail, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := lockJob(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	if job.EngineerID == nil || *job.EngineerID != engineerID {
		return nil, workflow.NewAuthorizationError("only the assigned engineer can submit a job for review")
	}

	captures, err := queryJobCapturesTx(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	if err := workflow.ValidateSubmit(job.Status, workflow.IsCompleteForReview(captures)); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE field.jobs
		SET status = $1, submitted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`,
		models.JobStatusSubmitted, jobID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to submit job")
		return nil, fmt.Errorf("failed to submit job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job submission: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"job_id":      jobID,
		"engineer_id": engineerID,
	}).Info("Job submitted for review")

	return dao.GetJob(ctx, jobID)
}

// ReviewJob executes the approve or reject decision on a submitted job
func (dao *JobDao) ReviewJob(ctx context.Context, jobID, reviewerID int64, action *models.JobReviewAction) (*models.JobDetail, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := lockJob(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	if err := workflow.ValidateReview(job.Status); err != nil {
		return nil, err
	}

	var newStatus string
	var reviewNotes sql.NullString

	switch action.Action {
	case models.ReviewActionApprove:
		newStatus = models.JobStatusApproved
		reviewNotes = stringOrNull(util.TrimToNull(action.Notes))
	case models.ReviewActionReject:
		reason, err := workflow.ValidateRejectReason(action.Reason)
		if err != nil {
			return nil, err
		}
		newStatus = models.JobStatusRejected
		reviewNotes = sql.NullString{String: reason, Valid: true}
	default:
		return nil, workflow.NewValidationError("invalid review action: " + action.Action)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE field.jobs
		SET status = $1, review_notes = $2, reviewed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`,
		newStatus, reviewNotes, jobID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to review job")
		return nil, fmt.Errorf("failed to review job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job review: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"job_id":      jobID,
		"reviewer_id": reviewerID,
		"status":      newStatus,
	}).Info("Job reviewed")

	return dao.GetJob(ctx, jobID)
}

// Helper functions

// lockJob reads a job row under FOR UPDATE inside the given transaction
func lockJob(ctx context.Context, tx *sql.Tx, jobID int64) (*models.Job, error) {
	query := `
		SELECT id, reference, title, description, site_id, template_id, engineer_id,
			   created_by, status, scheduled_date, scheduled_start_time, scheduled_end_time,
			   started_at, submitted_at, reviewed_at, review_notes, created_at, updated_at
		FROM field.jobs
		WHERE id = $1
		FOR UPDATE`

	var job models.Job
	var description, reviewNotes sql.NullString
	var engineerID sql.NullInt64
	var scheduledDate, startTime, endTime, startedAt, submittedAt, reviewedAt sql.NullTime

	err := tx.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.Reference, &job.Title, &description, &job.SiteID, &job.TemplateID, &engineerID,
		&job.CreatedBy, &job.Status, &scheduledDate, &startTime, &endTime,
		&startedAt, &submittedAt, &reviewedAt, &reviewNotes, &job.CreatedAt, &job.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock job: %w", err)
	}

	job.Description = nullStringPtr(description)
	job.EngineerID = nullInt64Ptr(engineerID)
	job.ScheduledDate = nullTimePtr(scheduledDate)
	job.ScheduledStartTime = nullTimePtr(startTime)
	job.ScheduledEndTime = nullTimePtr(endTime)
	job.StartedAt = nullTimePtr(startedAt)
	job.SubmittedAt = nullTimePtr(submittedAt)
	job.ReviewedAt = nullTimePtr(reviewedAt)
	job.ReviewNotes = nullStringPtr(reviewNotes)

	return &job, nil
}

// checkEngineer verifies the referenced user is an active engineer
func checkEngineer(ctx context.Context, tx *sql.Tx, engineerID int64) error {
	var role string
	var isActive bool
	err := tx.QueryRowContext(ctx,
		`SELECT role, is_active FROM iam.users WHERE id = $1`, engineerID).Scan(&role, &isActive)
	if err == sql.ErrNoRows {
		return workflow.NewValidationError("engineer_id must reference an active engineer")
	}
	if err != nil {
		return fmt.Errorf("failed to check engineer: %w", err)
	}
	if role != auth.RoleEngineer || !isActive {
		return workflow.NewValidationError("engineer_id must reference an active engineer")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
