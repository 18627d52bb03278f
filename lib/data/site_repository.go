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

// SiteRepository defines the interface for site data operations
type SiteRepository interface {
	CreateSite(ctx context.Context, req *models.CreateSiteRequest) (*models.Site, error)
	GetSite(ctx context.Context, siteID int64) (*models.Site, error)
	GetSites(ctx context.Context, search string) ([]models.SiteListItem, error)
	UpdateSite(ctx context.Context, siteID int64, req *models.UpdateSiteRequest) (*models.Site, error)
	DeleteSite(ctx context.Context, siteID int64) error
}

// SiteDao implements the SiteRepository interface
type SiteDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// CreateSite creates a new client site
func (dao *SiteDao) CreateSite(ctx context.Context, req *models.CreateSiteRequest) (*models.Site, error) {
	if err := validateSiteFields(req.ClientName, req.AddressLine1, req.City, req.Postcode); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO field.sites (
			client_name, site_name, address_line_1, address_line_2, city, postcode,
			contact_name, contact_phone, contact_email, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	site := models.Site{
		ClientName:   strings.TrimSpace(req.ClientName),
		SiteName:     util.TrimToNull(req.SiteName),
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: util.TrimToNull(req.AddressLine2),
		City:         strings.TrimSpace(req.City),
		Postcode:     strings.TrimSpace(req.Postcode),
		ContactName:  util.TrimToNull(req.ContactName),
		ContactPhone: util.TrimToNull(req.ContactPhone),
		ContactEmail: util.TrimToNull(req.ContactEmail),
		Notes:        util.TrimToNull(req.Notes),
	}

	err := dao.DB.QueryRowContext(ctx, query,
		site.ClientName, stringOrNull(site.SiteName), site.AddressLine1, stringOrNull(site.AddressLine2),
		site.City, site.Postcode,
		stringOrNull(site.ContactName), stringOrNull(site.ContactPhone), stringOrNull(site.ContactEmail),
		stringOrNull(site.Notes),
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to create site")
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"site_id":     site.ID,
		"client_name": site.ClientName,
	}).Info("Site created")

	return &site, nil
}

// GetSite retrieves a single site by ID
func (dao *SiteDao) GetSite(ctx context.Context, siteID int64) (*models.Site, error) {
	query := `
		SELECT id, client_name, site_name, address_line_1, address_line_2, city, postcode,
			   contact_name, contact_phone, contact_email, notes, created_at, updated_at
		FROM field.sites
		WHERE id = $1`

	site, err := scanSite(dao.DB.QueryRowContext(ctx, query, siteID))
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("site not found")
	}
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get site")
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	return site, nil
}

// GetSites lists sites with job counts, optionally filtered by a
// case-insensitive search over client name, site name, city and postcode.
func (dao *SiteDao) GetSites(ctx context.Context, search string) ([]models.SiteListItem, error) {
	query := `
		SELECT s.id, s.client_name, s.site_name, s.address_line_1, s.address_line_2,
			   s.city, s.postcode, s.contact_name, s.contact_phone, s.contact_email,
			   s.notes, s.created_at, s.updated_at,
			   COUNT(j.id) AS job_count
		FROM field.sites s
		LEFT JOIN field.jobs j ON j.site_id = s.id`

	args := []interface{}{}
	if search = strings.TrimSpace(search); search != "" {
		query += `
		WHERE s.client_name ILIKE $1 OR s.site_name ILIKE $1 OR s.city ILIKE $1 OR s.postcode ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	query += `
		GROUP BY s.id
		ORDER BY s.client_name, s.id`

	rows, err := dao.DB.QueryContext(ctx, query, args...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get sites")
		return nil, fmt.Errorf("failed to get sites: %w", err)
	}
	defer rows.Close()

	var sites []models.SiteListItem
	for rows.Next() {
		var item models.SiteListItem
		var siteName, addressLine2, contactName, contactPhone, contactEmail, notes sql.NullString

		err := rows.Scan(
			&item.ID, &item.ClientName, &siteName, &item.AddressLine1, &addressLine2,
			&item.City, &item.Postcode, &contactName, &contactPhone, &contactEmail,
			&notes, &item.CreatedAt, &item.UpdatedAt,
			&item.JobCount,
		)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan site row")
			continue
		}

		item.SiteName = nullStringPtr(siteName)
		item.AddressLine2 = nullStringPtr(addressLine2)
		item.ContactName = nullStringPtr(contactName)
		item.ContactPhone = nullStringPtr(contactPhone)
		item.ContactEmail = nullStringPtr(contactEmail)
		item.Notes = nullStringPtr(notes)

		sites = append(sites, item)
	}

	return sites, nil
}

// UpdateSite applies a partial update to a site
func (dao *SiteDao) UpdateSite(ctx context.Context, siteID int64, req *models.UpdateSiteRequest) (*models.Site, error) {
	site, err := dao.GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	applyRequired := func(dst *string, src *string) error {
		if src == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*src)
		if trimmed == "" {
			return workflow.NewValidationError("client_name, address_line_1, city and postcode are required")
		}
		*dst = trimmed
		return nil
	}

	if err := applyRequired(&site.ClientName, req.ClientName); err != nil {
		return nil, err
	}
	if err := applyRequired(&site.AddressLine1, req.AddressLine1); err != nil {
		return nil, err
	}
	if err := applyRequired(&site.City, req.City); err != nil {
		return nil, err
	}
	if err := applyRequired(&site.Postcode, req.Postcode); err != nil {
		return nil, err
	}

	if req.SiteName != nil {
		site.SiteName = util.TrimToNull(req.SiteName)
	}
	if req.AddressLine2 != nil {
		site.AddressLine2 = util.TrimToNull(req.AddressLine2)
	}
	if req.ContactName != nil {
		site.ContactName = util.TrimToNull(req.ContactName)
	}
	if req.ContactPhone != nil {
		site.ContactPhone = util.TrimToNull(req.ContactPhone)
	}
	if req.ContactEmail != nil {
		site.ContactEmail = util.TrimToNull(req.ContactEmail)
	}
	if req.Notes != nil {
		site.Notes = util.TrimToNull(req.Notes)
	}

	query := `
		UPDATE field.sites
		SET client_name = $1, site_name = $2, address_line_1 = $3, address_line_2 = $4,
			city = $5, postcode = $6, contact_name = $7, contact_phone = $8,
			contact_email = $9, notes = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at`

	err = dao.DB.QueryRowContext(ctx, query,
		site.ClientName, stringOrNull(site.SiteName), site.AddressLine1, stringOrNull(site.AddressLine2),
		site.City, site.Postcode, stringOrNull(site.ContactName), stringOrNull(site.ContactPhone),
		stringOrNull(site.ContactEmail), stringOrNull(site.Notes), siteID,
	).Scan(&site.UpdatedAt)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to update site")
		return nil, fmt.Errorf("failed to update site: %w", err)
	}

	return site, nil
}

// DeleteSite removes a site unless jobs still reference it
func (dao *SiteDao) DeleteSite(ctx context.Context, siteID int64) error {
	var jobCount int
	if err := dao.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM field.jobs WHERE site_id = $1`, siteID).Scan(&jobCount); err != nil {
		return fmt.Errorf("failed to check site jobs: %w", err)
	}
	if jobCount > 0 {
		return workflow.NewConflictError("site has jobs and cannot be deleted")
	}

	result, err := dao.DB.ExecContext(ctx, `DELETE FROM field.sites WHERE id = $1`, siteID)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to delete site")
		return fmt.Errorf("failed to delete site: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return workflow.NewNotFoundError("site not found")
	}

	dao.Logger.WithField("site_id", siteID).Info("Site deleted")
	return nil
}

func scanSite(row rowScanner) (*models.Site, error) {
	var site models.Site
	var siteName, addressLine2, contactName, contactPhone, contactEmail, notes sql.NullString

	err := row.Scan(
		&site.ID, &site.ClientName, &siteName, &site.AddressLine1, &addressLine2,
		&site.City, &site.Postcode, &contactName, &contactPhone, &contactEmail,
		&notes, &site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	site.SiteName = nullStringPtr(siteName)
	site.AddressLine2 = nullStringPtr(addressLine2)
	site.ContactName = nullStringPtr(contactName)
	site.ContactPhone = nullStringPtr(contactPhone)
	site.ContactEmail = nullStringPtr(contactEmail)
	site.Notes = nullStringPtr(notes)

	return &site, nil
}

func validateSiteFields(clientName, addressLine1, city, postcode string) error {
	if strings.TrimSpace(clientName) == "" || strings.TrimSpace(addressLine1) == "" ||
		strings.TrimSpace(city) == "" || strings.TrimSpace(postcode) == "" {
		return workflow.NewValidationError("client_name, address_line_1, city and postcode are required")
	}
	return nil
}
