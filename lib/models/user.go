package models

import (
	"time"
)

// User represents a user in the system based on iam.users table
type User struct {
	ID        int64     `json:"id"`         // Primary key from iam.users.id
	CognitoID string    `json:"cognito_id"` // AWS Cognito sub UUID
	Email     string    `json:"email"`      // User's email (must match Cognito email)
	FullName  string    `json:"full_name"`  // Display name
	Role      string    `json:"role"`       // 'super_admin', 'trade_manager' or 'engineer'
	IsActive  bool      `json:"is_active"`  // Deactivated users cannot hold job assignments
	Phone     *string   `json:"phone_number,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedBy *int64    `json:"created_by"` // User who provisioned this account, null for the bootstrap admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest represents the request payload for creating a new user
type CreateUserRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone_number,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// UpdateUserRequest represents the request payload for updating an existing user
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Phone    *string `json:"phone_number,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// UserListResponse represents the response for listing users
type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// CreateUserResponse represents the response after creating a user
type CreateUserResponse struct {
	User
	TemporaryPassword string `json:"temporary_password,omitempty"` // Set when Cognito generated one
	Message           string `json:"message"`
}

// EngineerSummary is the engineer shape embedded in job views
type EngineerSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}
