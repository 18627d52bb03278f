package models

import "time"

// Site represents a client site based on field.sites table.
// Sites are referenced by jobs, never owned by them.
type Site struct {
	ID           int64     `json:"id"`
	ClientName   string    `json:"client_name"`
	SiteName     *string   `json:"site_name"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 *string   `json:"address_line_2"`
	City         string    `json:"city"`
	Postcode     string    `json:"postcode"`
	ContactName  *string   `json:"contact_name"`
	ContactPhone *string   `json:"contact_phone"`
	ContactEmail *string   `json:"contact_email"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SiteSummary is the site shape embedded in job list rows
type SiteSummary struct {
	ID           int64   `json:"id"`
	ClientName   string  `json:"client_name"`
	SiteName     *string `json:"site_name"`
	AddressLine1 string  `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
}

// SiteListItem is a site row in list responses, with how many jobs reference it
type SiteListItem struct {
	Site
	JobCount int `json:"job_count"`
}

// CreateSiteRequest represents the request payload for creating a site
type CreateSiteRequest struct {
	ClientName   string  `json:"client_name"`
	SiteName     *string `json:"site_name,omitempty"`
	AddressLine1 string  `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2,omitempty"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateSiteRequest represents the request payload for updating a site
type UpdateSiteRequest struct {
	ClientName   *string `json:"client_name,omitempty"`
	SiteName     *string `json:"site_name,omitempty"`
	AddressLine1 *string `json:"address_line_1,omitempty"`
	AddressLine2 *string `json:"address_line_2,omitempty"`
	City         *string `json:"city,omitempty"`
	Postcode     *string `json:"postcode,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// SiteListResponse represents the response for listing sites
type SiteListResponse struct {
	Sites []SiteListItem `json:"sites"`
	Total int            `json:"total"`
}
