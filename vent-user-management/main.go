package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"ventnav/lib/api"
	"ventnav/lib/auth"
	"ventnav/lib/clients"
	"ventnav/lib/constants"
	"ventnav/lib/data"
	"ventnav/lib/models"
	"ventnav/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Global variables for Lambda cold start optimization
var (
	logger         *logrus.Logger
	isLocal        bool
	ssmRepository  data.SSMRepository
	ssmParams      map[string]string
	sqlDB          *sql.DB
	userRepository data.UserRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Correlation id ties the Cognito and database writes of one
	// provisioning request together in the logs
	logger.WithFields(logrus.Fields{
		"operation":  "Handler",
		"method":     request.HTTPMethod,
		"path":       request.Path,
		"resource":   request.Resource,
		"request_id": uuid.New().String(),
	}).Info("User management request received")

	// Extract claims from JWT token via API Gateway authorizer
	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch request.HTTPMethod {
	case http.MethodPost:
		// POST /users - Provision a new user
		if request.Resource == "/users" {
			return handleCreateUser(ctx, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodGet:
		// GET /users/me - Current user's own record
		if strings.Contains(request.Resource, "/users/me") {
			return handleGetCurrentUser(ctx, claims), nil
		}

		// GET /users - List users
		if request.Resource == "/users" {
			return handleGetUsers(ctx, claims, request.QueryStringParameters), nil
		}

		// GET /users/{userId} - Get specific user
		if strings.Contains(request.Resource, "/users/{userId}") {
			userID, err := parseUserID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid user ID", logger), nil
			}
			return handleGetUser(ctx, userID, claims), nil
		}

		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodPut:
		// PUT /users/{userId} - Update user
		if strings.Contains(request.Resource, "/users/{userId}") {
			userID, err := parseUserID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid user ID", logger), nil
			}
			return handleUpdateUser(ctx, userID, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodDelete:
		// DELETE /users/{userId} - Delete user
		if strings.Contains(request.Resource, "/users/{userId}") {
			userID, err := parseUserID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid user ID", logger), nil
			}
			return handleDeleteUser(ctx, userID, claims), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	default:
		return api.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed", logger), nil
	}
}

func parseUserID(request events.APIGatewayProxyRequest) (int64, error) {
	return strconv.ParseInt(request.PathParameters["userId"], 10, 64)
}

// handleCreateUser handles POST /users. Trade managers may provision
// engineers only; any other role requires super_admin.
func handleCreateUser(ctx context.Context, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can create users", logger)
	}

	var createReq models.CreateUserRequest
	if err := api.ParseJSONBody(body, &createReq); err != nil {
		logger.WithError(err).Error("Failed to parse create user request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	if !claims.IsSuperAdmin() && createReq.Role != auth.RoleEngineer {
		return api.ErrorResponse(http.StatusForbidden, "Trade managers can only create engineer accounts", logger)
	}

	user, err := userRepository.CreateUser(ctx, claims.UserID, &createReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusCreated, user, logger)
}

// handleGetCurrentUser handles GET /users/me
func handleGetCurrentUser(ctx context.Context, claims *auth.Claims) events.APIGatewayProxyResponse {
	user, err := userRepository.GetUserByCognitoID(ctx, claims.CognitoID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, user, logger)
}

// handleGetUsers handles GET /users. Engineers cannot browse the user list.
func handleGetUsers(ctx context.Context, claims *auth.Claims, filters map[string]string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can list users", logger)
	}
	if filters == nil {
		filters = map[string]string{}
	}

	users, err := userRepository.GetUsers(ctx, filters)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, models.UserListResponse{
		Users: users,
		Total: len(users),
	}, logger)
}

// handleGetUser handles GET /users/{userId}
func handleGetUser(ctx context.Context, userID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() && claims.UserID != userID {
		return api.ErrorResponse(http.StatusForbidden, "You can only view your own record", logger)
	}

	user, err := userRepository.GetUser(ctx, userID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, user, logger)
}

// handleUpdateUser handles PUT /users/{userId}. Trade managers may only
// touch engineer accounts.
func handleUpdateUser(ctx context.Context, userID int64, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can update users", logger)
	}

	if !claims.IsSuperAdmin() {
		target, err := userRepository.GetUser(ctx, userID)
		if err != nil {
			return api.WorkflowErrorResponse(err, logger)
		}
		if target.Role != auth.RoleEngineer {
			return api.ErrorResponse(http.StatusForbidden, "Trade managers can only update engineer accounts", logger)
		}
	}

	var updateReq models.UpdateUserRequest
	if err := api.ParseJSONBody(body, &updateReq); err != nil {
		logger.WithError(err).Error("Failed to parse update user request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	// Admins cannot lock themselves out
	if userID == claims.UserID && updateReq.IsActive != nil && !*updateReq.IsActive {
		return api.ErrorResponse(http.StatusBadRequest, "You cannot deactivate your own account", logger)
	}

	user, err := userRepository.UpdateUser(ctx, userID, &updateReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, user, logger)
}

// handleDeleteUser handles DELETE /users/{userId}
func handleDeleteUser(ctx context.Context, userID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	if !claims.IsSuperAdmin() {
		return api.ErrorResponse(http.StatusForbidden, "Only administrators can delete users", logger)
	}
	if userID == claims.UserID {
		return api.ErrorResponse(http.StatusBadRequest, "You cannot delete your own account", logger)
	}

	if err := userRepository.DeleteUser(ctx, userID); err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, map[string]string{"message": "User deleted successfully"}, logger)
}

// main is the Lambda function entry point
func main() {
	lambda.Start(Handler)
}

func init() {
	var err error

	isLocal = parseIsLocal()

	// Logger Setup
	logger = setupLogger(isLocal)

	// Initialize AWS SSM Parameter Store client
	ssmClient := clients.NewSSMClient(isLocal)
	ssmRepository = &data.SSMDao{
		SSM:    ssmClient,
		Logger: logger,
	}

	// Retrieve all required configuration parameters from SSM
	ssmParams, err = ssmRepository.GetParameters()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error while getting SSM params from parameter store")
	}

	// Initialize PostgreSQL database connection
	err = setupPostgresSQLClient(ssmParams)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error setting up PostgreSQL client")
	}

	logger.WithField("operation", "init").Info("User Management Lambda initialization completed successfully")
}

func parseIsLocal() bool {
	isLocal, _ := strconv.ParseBool(os.Getenv("IS_LOCAL"))
	return isLocal
}

func setupLogger(isLocal bool) *logrus.Logger {
	logger := logrus.New()
	util.SetLogLevel(logger, os.Getenv("LOG_LEVEL"))
	logger.SetFormatter(&logrus.JSONFormatter{PrettyPrint: isLocal})
	return logger
}

func setupPostgresSQLClient(ssmParams map[string]string) error {
	var err error

	// Create PostgreSQL client using RDS connection parameters from SSM
	sqlDB, err = clients.NewPostgresSQLClient(
		ssmParams[constants.DATABASE_RDS_ENDPOINT],
		ssmParams[constants.DATABASE_PORT],
		ssmParams[constants.DATABASE_NAME],
		ssmParams[constants.DATABASE_USERNAME],
		ssmParams[constants.DATABASE_PASSWORD],
		ssmParams[constants.SSL_MODE],
	)
	if err != nil {
		return fmt.Errorf("error creating PostgreSQL client: %w", err)
	}

	// Initialize user repository backed by Postgres and Cognito
	userRepository = &data.UserDao{
		DB:      sqlDB,
		Cognito: clients.NewCognitoClient(isLocal, ssmParams[constants.COGNITO_USER_POOL_ID]),
		Logger:  logger,
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("operation", "setupPostgresSQLClient").Debug("PostgreSQL client initialized successfully")
	}
	return nil
}
