package auth

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// Role constants for iam.users.role
const (
	RoleSuperAdmin   = "super_admin"
	RoleTradeManager = "trade_manager"
	RoleEngineer     = "engineer"
)

// Claims represents the JWT claims extracted from the API Gateway authorizer context
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	CognitoID string `json:"sub"`
	Role      string `json:"role"`
}

// ExtractClaimsFromRequest extracts and parses JWT claims from API Gateway request
func ExtractClaimsFromRequest(request events.APIGatewayProxyRequest) (*Claims, error) {
	// Get claims from authorizer context
	var claimsMap map[string]interface{}
	var ok bool

	// Try different possible claim locations in the authorizer context
	if authClaims, exists := request.RequestContext.Authorizer["claims"]; exists {
		claimsMap, ok = authClaims.(map[string]interface{})
	}

	// If claims not found, try direct access to authorizer (some API Gateway configurations)
	if !ok {
		claimsMap = request.RequestContext.Authorizer
		ok = (claimsMap != nil)
	}

	if !ok || claimsMap == nil {
		return nil, fmt.Errorf("claims not found in authorizer context")
	}

	// Extract and parse user_id
	var userID int64
	if userIDValue, exists := claimsMap["user_id"]; exists {
		// Try as string first
		if userIDStr, ok := userIDValue.(string); ok {
			var err error
			userID, err = strconv.ParseInt(userIDStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse user_id string: %w", err)
			}
		} else if userIDFloat, ok := userIDValue.(float64); ok {
			// JSON numbers are parsed as float64
			userID = int64(userIDFloat)
		} else {
			return nil, fmt.Errorf("user_id has unexpected type")
		}
	} else {
		return nil, fmt.Errorf("user_id not found in claims")
	}

	// Extract email
	email, ok := claimsMap["email"].(string)
	if !ok {
		return nil, fmt.Errorf("email not found or invalid in claims")
	}

	// Extract Cognito ID (sub)
	cognitoID, ok := claimsMap["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("sub not found or invalid in claims")
	}

	// Extract role; Cognito custom attributes come through as custom:role
	role, ok := claimsMap["custom:role"].(string)
	if !ok {
		role, ok = claimsMap["role"].(string)
	}
	if !ok || !IsValidRole(role) {
		return nil, fmt.Errorf("role not found or invalid in claims")
	}

	return &Claims{
		UserID:    userID,
		Email:     email,
		CognitoID: cognitoID,
		Role:      role,
	}, nil
}

// IsValidRole reports whether role is one of the known user roles
func IsValidRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleTradeManager || role == RoleEngineer
}

// IsSuperAdmin returns true for super admin users
func (c *Claims) IsSuperAdmin() bool {
	return c.Role == RoleSuperAdmin
}

// IsEngineer returns true for engineer users
func (c *Claims) IsEngineer() bool {
	return c.Role == RoleEngineer
}

// CanManageJobs returns true for roles allowed to create, update and review jobs
func (c *Claims) CanManageJobs() bool {
	return c.Role == RoleSuperAdmin || c.Role == RoleTradeManager
}

// ToJSON converts claims to JSON string for logging
func (c *Claims) ToJSON() string {
	data, _ := json.Marshal(c)
	return string(data)
}
