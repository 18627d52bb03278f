package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ventnav/lib/models"
	"ventnav/lib/util"
	"ventnav/lib/workflow"

	"github.com/sirupsen/logrus"
)

// CaptureRepository defines the interface for work capture data operations.
// Image writes are a two-phase flow: PrepareCaptureUpload checks the gate
// and hands out presign keys, ConfirmCaptureUpload re-checks the gate under
// row locks and records the stored keys.
type CaptureRepository interface {
	GetJobCaptures(ctx context.Context, jobID int64) (*models.CaptureListResponse, error)
	GetCapture(ctx context.Context, jobID, captureID int64) (*models.WorkCapture, error)
	PrepareCaptureUpload(ctx context.Context, jobID, captureID int64, side string, actorID int64) (*models.Job, *models.WorkCapture, error)
	ConfirmCaptureUpload(ctx context.Context, jobID, captureID int64, side string, actorID int64, req *models.CaptureConfirmRequest) (*models.WorkCapture, []string, error)
	UpdateCaptureNotes(ctx context.Context, jobID, captureID, actorID int64, notes *string) (*models.WorkCapture, error)
}

// CaptureDao implements the CaptureRepository interface
type CaptureDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// GetJobCaptures returns a job's captures in area order plus the completion percentage
func (dao *CaptureDao) GetJobCaptures(ctx context.Context, jobID int64) (*models.CaptureListResponse, error) {
	var exists bool
	if err := dao.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM field.jobs WHERE id = $1)`, jobID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check job: %w", err)
	}
	if !exists {
		return nil, workflow.NewNotFoundError("job not found")
	}

	captures, err := queryJobCaptures(ctx, dao.DB, jobID)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get job captures")
		return nil, err
	}

	return &models.CaptureListResponse{
		Captures:             captures,
		CompletionPercentage: workflow.CompletionPercentage(captures),
	}, nil
}

// GetCapture returns a single capture, verifying it belongs to the job
func (dao *CaptureDao) GetCapture(ctx context.Context, jobID, captureID int64) (*models.WorkCapture, error) {
	capture, err := scanCapture(dao.DB.QueryRowContext(ctx,
		captureSelect+` WHERE id = $1 AND job_id = $2`, captureID, jobID))
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("capture not found")
	}
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get capture")
		return nil, fmt.Errorf("failed to get capture: %w", err)
	}
	return capture, nil
}

// PrepareCaptureUpload runs the capture gate before a presigned URL is
// issued. The returned job and capture carry the ids the caller needs to
// build the object keys. The check is advisory; ConfirmCaptureUpload
// re-runs it under locks before anything is written.
func (dao *CaptureDao) PrepareCaptureUpload(ctx context.Context, jobID, captureID int64, side string, actorID int64) (*models.Job, *models.WorkCapture, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := lockJob(ctx, tx, jobID)
	if err != nil {
		return nil, nil, err
	}

	capture, err := lockCapture(ctx, tx, jobID, captureID)
	if err != nil {
		return nil, nil, err
	}

	if err := workflow.ValidateCapture(job, capture, side, actorID, time.Now()); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit: %w", err)
	}

	return job, capture, nil
}

// ConfirmCaptureUpload records the uploaded object keys on the capture side
// and advances the job to in_progress on the first write. Both rows are
// locked and the gate re-evaluated so a review decision that landed between
// presign and confirm still wins.
func (dao *CaptureDao) ConfirmCaptureUpload(ctx context.Context, jobID, captureID int64, side string, actorID int64, req *models.CaptureConfirmRequest) (*models.WorkCapture, []string, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := lockJob(ctx, tx, jobID)
	if err != nil {
		return nil, nil, err
	}

	capture, err := lockCapture(ctx, tx, jobID, captureID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := workflow.ValidateCapture(job, capture, side, actorID, now); err != nil {
		return nil, nil, err
	}

	// Keys for objects a re-upload is replacing, cleaned up by the caller
	var staleKeys []string

	switch side {
	case models.CaptureSidePre:
		if capture.PreImageURL != nil {
			staleKeys = append(staleKeys, *capture.PreImageURL)
		}
		if capture.PreThumbnailURL != nil {
			staleKeys = append(staleKeys, *capture.PreThumbnailURL)
		}
		capture.PreImageURL = &req.S3Key
		capture.PreThumbnailURL = req.ThumbnailKey
		capture.PreCapturedAt = &now
	case models.CaptureSidePost:
		if capture.PostImageURL != nil {
			staleKeys = append(staleKeys, *capture.PostImageURL)
		}
		if capture.PostThumbnailURL != nil {
			staleKeys = append(staleKeys, *capture.PostThumbnailURL)
		}
		capture.PostImageURL = &req.S3Key
		capture.PostThumbnailURL = req.ThumbnailKey
		capture.PostCapturedAt = &now
	default:
		return nil, nil, workflow.NewValidationError("capture side must be pre or post")
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE field.work_captures
		SET pre_image_url = $1, pre_thumbnail_url = $2, pre_captured_at = $3,
			post_image_url = $4, post_thumbnail_url = $5, post_captured_at = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7`,
		stringOrNull(capture.PreImageURL), stringOrNull(capture.PreThumbnailURL), timeOrNull(capture.PreCapturedAt),
		stringOrNull(capture.PostImageURL), stringOrNull(capture.PostThumbnailURL), timeOrNull(capture.PostCapturedAt),
		captureID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to update capture")
		return nil, nil, fmt.Errorf("failed to update capture: %w", err)
	}

	if next := workflow.StatusAfterCapture(job.Status); next != job.Status {
		_, err = tx.ExecContext(ctx, `
			UPDATE field.jobs
			SET status = $1, started_at = COALESCE(started_at, CURRENT_TIMESTAMP), updated_at = CURRENT_TIMESTAMP
			WHERE id = $2`,
			next, jobID,
		)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to advance job status")
			return nil, nil, fmt.Errorf("failed to advance job status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit capture upload: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"job_id":     jobID,
		"capture_id": captureID,
		"side":       side,
	}).Info("Capture image recorded")

	return capture, staleKeys, nil
}

// UpdateCaptureNotes sets or clears the engineer notes on a capture. Only
// the assigned engineer may write notes, and approved jobs stay immutable.
func (dao *CaptureDao) UpdateCaptureNotes(ctx context.Context, jobID, captureID, actorID int64, notes *string) (*models.WorkCapture, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := lockJob(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusApproved {
		return nil, workflow.NewConflictError("approved jobs cannot be modified")
	}
	if job.EngineerID == nil || *job.EngineerID != actorID {
		return nil, workflow.NewAuthorizationError("only the assigned engineer can capture images")
	}

	capture, err := lockCapture(ctx, tx, jobID, captureID)
	if err != nil {
		return nil, err
	}

	capture.Notes = util.TrimToNull(notes)

	_, err = tx.ExecContext(ctx, `
		UPDATE field.work_captures
		SET notes = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`,
		stringOrNull(capture.Notes), captureID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to update capture notes")
		return nil, fmt.Errorf("failed to update capture notes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit notes update: %w", err)
	}

	return capture, nil
}

// Shared capture query helpers, used by the job repository as well

const captureSelect = `
	SELECT id, job_id, template_area_id, area_name, order_index, photo_guidance,
		   pre_image_url, pre_thumbnail_url, pre_captured_at,
		   post_image_url, post_thumbnail_url, post_captured_at,
		   notes, created_at, updated_at
	FROM field.work_captures`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCapture(row rowScanner) (*models.WorkCapture, error) {
	var c models.WorkCapture
	var photoGuidance, preImage, preThumb, postImage, postThumb, notes sql.NullString
	var preCapturedAt, postCapturedAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.JobID, &c.TemplateAreaID, &c.AreaName, &c.OrderIndex, &photoGuidance,
		&preImage, &preThumb, &preCapturedAt,
		&postImage, &postThumb, &postCapturedAt,
		&notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.PhotoGuidance = nullStringPtr(photoGuidance)
	c.PreImageURL = nullStringPtr(preImage)
	c.PreThumbnailURL = nullStringPtr(preThumb)
	c.PreCapturedAt = nullTimePtr(preCapturedAt)
	c.PostImageURL = nullStringPtr(postImage)
	c.PostThumbnailURL = nullStringPtr(postThumb)
	c.PostCapturedAt = nullTimePtr(postCapturedAt)
	c.Notes = nullStringPtr(notes)

	return &c, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func queryCaptures(ctx context.Context, q queryer, jobID int64) ([]models.WorkCapture, error) {
	rows, err := q.QueryContext(ctx, captureSelect+` WHERE job_id = $1 ORDER BY order_index, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get captures: %w", err)
	}
	defer rows.Close()

	captures := []models.WorkCapture{}
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", err)
		}
		captures = append(captures, *c)
	}

	return captures, rows.Err()
}

func queryJobCaptures(ctx context.Context, db *sql.DB, jobID int64) ([]models.WorkCapture, error) {
	return queryCaptures(ctx, db, jobID)
}

func queryJobCapturesTx(ctx context.Context, tx *sql.Tx, jobID int64) ([]models.WorkCapture, error) {
	return queryCaptures(ctx, tx, jobID)
}

// lockCapture reads a capture row under FOR UPDATE, verifying job ownership
func lockCapture(ctx context.Context, tx *sql.Tx, jobID, captureID int64) (*models.WorkCapture, error) {
	capture, err := scanCapture(tx.QueryRowContext(ctx,
		captureSelect+` WHERE id = $1 AND job_id = $2 FOR UPDATE`, captureID, jobID))
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("capture not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock capture: %w", err)
	}
	return capture, nil
}
