package models

import "time"

// Template is a reusable inspection checklist based on field.templates table.
// Jobs snapshot a template's areas at creation time, so editing a template
// never alters captures already recorded against existing jobs.
type Template struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TemplateArea is one named inspection area of a template, ordered by
// order_index (positive, unique per template, not necessarily dense)
type TemplateArea struct {
	ID            int64     `json:"id"`
	TemplateID    int64     `json:"template_id"`
	Name          string    `json:"name"`
	OrderIndex    int       `json:"order_index"`
	PhotoGuidance *string   `json:"photo_guidance"`
	CreatedAt     time.Time `json:"created_at"`
}

// TemplateAreaRequest is one area in a create/update template payload
type TemplateAreaRequest struct {
	Name          string  `json:"name"`
	OrderIndex    int     `json:"order_index"`
	PhotoGuidance *string `json:"photo_guidance,omitempty"`
}

// CreateTemplateRequest represents the request payload for creating a template
type CreateTemplateRequest struct {
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	Areas       []TemplateAreaRequest `json:"areas"`
}

// UpdateTemplateRequest represents the request payload for updating a template.
// When Areas is non-nil the template's area list is replaced wholesale.
type UpdateTemplateRequest struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	IsActive    *bool                 `json:"is_active,omitempty"`
	Areas       []TemplateAreaRequest `json:"areas,omitempty"`
}

// TemplateListItem is a template row in list responses
type TemplateListItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	AreaCount   int       `json:"area_count"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TemplateDetail is a template with its ordered areas
type TemplateDetail struct {
	TemplateListItem
	Areas []TemplateArea `json:"areas"`
}

// TemplateListResponse represents the response for listing templates
type TemplateListResponse struct {
	Templates []TemplateListItem `json:"templates"`
}
