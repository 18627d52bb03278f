package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ventnav/lib/models"
	"ventnav/lib/util"
	"ventnav/lib/workflow"

	"github.com/sirupsen/logrus"
)

// TemplateRepository defines the interface for template data operations
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, createdBy int64, req *models.CreateTemplateRequest) (*models.TemplateDetail, error)
	GetTemplate(ctx context.Context, templateID int64) (*models.TemplateDetail, error)
	GetTemplates(ctx context.Context, includeInactive bool) ([]models.TemplateListItem, error)
	UpdateTemplate(ctx context.Context, templateID int64, req *models.UpdateTemplateRequest) (*models.TemplateDetail, error)
	DeleteTemplate(ctx context.Context, templateID int64) error
}

// TemplateDao implements the TemplateRepository interface
type TemplateDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// CreateTemplate creates a template with its areas in one transaction
func (dao *TemplateDao) CreateTemplate(ctx context.Context, createdBy int64, req *models.CreateTemplateRequest) (*models.TemplateDetail, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, workflow.NewValidationError("template name is required")
	}
	if err := validateTemplateAreas(req.Areas); err != nil {
		return nil, err
	}

	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var templateID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO field.templates (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id`,
		strings.TrimSpace(req.Name), stringOrNull(util.TrimToNull(req.Description)), createdBy,
	).Scan(&templateID)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to create template")
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	if err := insertTemplateAreas(ctx, tx, templateID, req.Areas); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit template creation: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"template_id": templateID,
		"area_count":  len(req.Areas),
	}).Info("Template created")

	return dao.GetTemplate(ctx, templateID)
}

// GetTemplate retrieves a template with its ordered areas
func (dao *TemplateDao) GetTemplate(ctx context.Context, templateID int64) (*models.TemplateDetail, error) {
	var detail models.TemplateDetail
	var description sql.NullString

	err := dao.DB.QueryRowContext(ctx, `
		SELECT t.id, t.name, t.description, t.is_active, t.created_at,
			   (SELECT COUNT(*) FROM field.template_areas a WHERE a.template_id = t.id)
		FROM field.templates t
		WHERE t.id = $1`, templateID,
	).Scan(&detail.ID, &detail.Name, &description, &detail.IsActive, &detail.CreatedAt, &detail.AreaCount)
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("template not found")
	}
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get template")
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	detail.Description = nullStringPtr(description)

	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, template_id, name, order_index, photo_guidance, created_at
		FROM field.template_areas
		WHERE template_id = $1
		ORDER BY order_index, id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template areas: %w", err)
	}
	defer rows.Close()

	detail.Areas = []models.TemplateArea{}
	for rows.Next() {
		var area models.TemplateArea
		var guidance sql.NullString
		if err := rows.Scan(&area.ID, &area.TemplateID, &area.Name, &area.OrderIndex, &guidance, &area.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template area: %w", err)
		}
		area.PhotoGuidance = nullStringPtr(guidance)
		detail.Areas = append(detail.Areas, area)
	}

	return &detail, nil
}

// GetTemplates lists templates with area counts; inactive templates are
// included only on request.
func (dao *TemplateDao) GetTemplates(ctx context.Context, includeInactive bool) ([]models.TemplateListItem, error) {
	query := `
		SELECT t.id, t.name, t.description, t.is_active, t.created_at,
			   COUNT(a.id) AS area_count
		FROM field.templates t
		LEFT JOIN field.template_areas a ON a.template_id = t.id`

	if !includeInactive {
		query += `
		WHERE t.is_active = true`
	}

	query += `
		GROUP BY t.id
		ORDER BY t.name, t.id`

	rows, err := dao.DB.QueryContext(ctx, query)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get templates")
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	defer rows.Close()

	var templates []models.TemplateListItem
	for rows.Next() {
		var item models.TemplateListItem
		var description sql.NullString

		if err := rows.Scan(&item.ID, &item.Name, &description, &item.IsActive, &item.CreatedAt, &item.AreaCount); err != nil {
			dao.Logger.WithError(err).Error("Failed to scan template row")
			continue
		}

		item.Description = nullStringPtr(description)
		templates = append(templates, item)
	}

	return templates, nil
}

// UpdateTemplate applies a partial update; a non-nil area list replaces the
// template's areas wholesale. Existing jobs keep their snapshotted areas.
func (dao *TemplateDao) UpdateTemplate(ctx context.Context, templateID int64, req *models.UpdateTemplateRequest) (*models.TemplateDetail, error) {
	if req.Areas != nil {
		if err := validateTemplateAreas(req.Areas); err != nil {
			return nil, err
		}
	}

	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	var description sql.NullString
	var isActive bool
	err = tx.QueryRowContext(ctx, `
		SELECT name, description, is_active
		FROM field.templates
		WHERE id = $1
		FOR UPDATE`, templateID,
	).Scan(&name, &description, &isActive)
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("template not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock template: %w", err)
	}

	if req.Name != nil {
		if trimmed := strings.TrimSpace(*req.Name); trimmed != "" {
			name = trimmed
		}
	}
	if req.Description != nil {
		description = stringOrNull(util.TrimToNull(req.Description))
	}
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE field.templates
		SET name = $1, description = $2, is_active = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`,
		name, description, isActive, templateID,
	)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to update template")
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	if req.Areas != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM field.template_areas WHERE template_id = $1`, templateID); err != nil {
			return nil, fmt.Errorf("failed to replace template areas: %w", err)
		}
		if err := insertTemplateAreas(ctx, tx, templateID, req.Areas); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit template update: %w", err)
	}

	return dao.GetTemplate(ctx, templateID)
}

// DeleteTemplate removes a template and its areas unless jobs reference it
func (dao *TemplateDao) DeleteTemplate(ctx context.Context, templateID int64) error {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var jobCount int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM field.jobs WHERE template_id = $1`, templateID).Scan(&jobCount); err != nil {
		return fmt.Errorf("failed to check template jobs: %w", err)
	}
	if jobCount > 0 {
		return workflow.NewConflictError("template has jobs and cannot be deleted")
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM field.template_areas WHERE template_id = $1`, templateID); err != nil {
		return fmt.Errorf("failed to delete template areas: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM field.templates WHERE id = $1`, templateID)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to delete template")
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return workflow.NewNotFoundError("template not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit template deletion: %w", err)
	}

	dao.Logger.WithField("template_id", templateID).Info("Template deleted")
	return nil
}

func insertTemplateAreas(ctx context.Context, tx *sql.Tx, templateID int64, areas []models.TemplateAreaRequest) error {
	for _, area := range areas {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO field.template_areas (template_id, name, order_index, photo_guidance)
			VALUES ($1, $2, $3, $4)`,
			templateID, strings.TrimSpace(area.Name), area.OrderIndex,
			stringOrNull(util.TrimToNull(area.PhotoGuidance)),
		)
		if err != nil {
			return fmt.Errorf("failed to insert template area: %w", err)
		}
	}
	return nil
}

func validateTemplateAreas(areas []models.TemplateAreaRequest) error {
	if len(areas) == 0 {
		return workflow.NewValidationError("template requires at least one area")
	}

	seen := make(map[int]bool, len(areas))
	for _, area := range areas {
		if strings.TrimSpace(area.Name) == "" {
			return workflow.NewValidationError("area name is required")
		}
		if area.OrderIndex <= 0 {
			return workflow.NewValidationError("area order_index must be positive")
		}
		if seen[area.OrderIndex] {
			return workflow.NewValidationError("area order_index values must be unique")
		}
		seen[area.OrderIndex] = true
	}
	return nil
}
