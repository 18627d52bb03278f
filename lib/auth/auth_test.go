package auth

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func requestWithClaims(claims map[string]interface{}) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{
				"claims": claims,
			},
		},
	}
}

func Test_ExtractClaimsFromRequest_Success(t *testing.T) {
	//Arrange
	request := requestWithClaims(map[string]interface{}{
		"user_id":     "42",
		"email":       "jo@example.com",
		"sub":         "abc-123",
		"custom:role": RoleEngineer,
	})

	//Act
	claims, err := ExtractClaimsFromRequest(request)

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, "abc-123", claims.CognitoID)
	assert.Equal(t, RoleEngineer, claims.Role)
}

func Test_ExtractClaimsFromRequest_NumericUserID(t *testing.T) {
	//Arrange
	// JSON numbers decode as float64
	request := requestWithClaims(map[string]interface{}{
		"user_id": float64(7),
		"email":   "jo@example.com",
		"sub":     "abc-123",
		"role":    RoleTradeManager,
	})

	//Act
	claims, err := ExtractClaimsFromRequest(request)

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, RoleTradeManager, claims.Role)
}

func Test_ExtractClaimsFromRequest_DirectAuthorizerContext(t *testing.T) {
	//Arrange
	request := events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{
				"user_id": "9",
				"email":   "sam@example.com",
				"sub":     "def-456",
				"role":    RoleSuperAdmin,
			},
		},
	}

	//Act
	claims, err := ExtractClaimsFromRequest(request)

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
}

func Test_ExtractClaimsFromRequest_MissingUserID(t *testing.T) {
	//Arrange
	request := requestWithClaims(map[string]interface{}{
		"email": "jo@example.com",
		"sub":   "abc-123",
		"role":  RoleEngineer,
	})

	//Act
	_, err := ExtractClaimsFromRequest(request)

	//Assert
	assert.EqualError(t, err, "user_id not found in claims")
}

func Test_ExtractClaimsFromRequest_InvalidRole(t *testing.T) {
	//Arrange
	request := requestWithClaims(map[string]interface{}{
		"user_id": "42",
		"email":   "jo@example.com",
		"sub":     "abc-123",
		"role":    "contractor",
	})

	//Act
	_, err := ExtractClaimsFromRequest(request)

	//Assert
	assert.EqualError(t, err, "role not found or invalid in claims")
}

func Test_IsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleSuperAdmin))
	assert.True(t, IsValidRole(RoleTradeManager))
	assert.True(t, IsValidRole(RoleEngineer))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("admin"))
}

func Test_RoleHelpers(t *testing.T) {
	//Arrange
	admin := &Claims{Role: RoleSuperAdmin}
	manager := &Claims{Role: RoleTradeManager}
	engineer := &Claims{Role: RoleEngineer}

	//Assert
	assert.True(t, admin.IsSuperAdmin())
	assert.True(t, admin.CanManageJobs())
	assert.False(t, admin.IsEngineer())

	assert.False(t, manager.IsSuperAdmin())
	assert.True(t, manager.CanManageJobs())

	assert.True(t, engineer.IsEngineer())
	assert.False(t, engineer.CanManageJobs())
}
