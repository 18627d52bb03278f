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
	"github.com/sirupsen/logrus"
)

// Global variables for Lambda cold start optimization
var (
	logger             *logrus.Logger
	isLocal            bool
	ssmRepository      data.SSMRepository
	ssmParams          map[string]string
	sqlDB              *sql.DB
	templateRepository data.TemplateRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"operation": "Handler",
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"resource":  request.Resource,
	}).Info("Template management request received")

	// Extract claims from JWT token via API Gateway authorizer
	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch request.HTTPMethod {
	case http.MethodPost:
		// POST /templates - Create new template with areas
		if request.Resource == "/templates" {
			return handleCreateTemplate(ctx, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodGet:
		// GET /templates - List templates
		if request.Resource == "/templates" {
			return handleGetTemplates(ctx, request.QueryStringParameters), nil
		}

		// GET /templates/{templateId} - Get template with areas
		if strings.Contains(request.Resource, "/templates/{templateId}") {
			templateID, err := parseTemplateID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid template ID", logger), nil
			}
			return handleGetTemplate(ctx, templateID), nil
		}

		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodPut:
		// PUT /templates/{templateId} - Update template
		if strings.Contains(request.Resource, "/templates/{templateId}") {
			templateID, err := parseTemplateID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid template ID", logger), nil
			}
			return handleUpdateTemplate(ctx, templateID, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodDelete:
		// DELETE /templates/{templateId} - Delete template
		if strings.Contains(request.Resource, "/templates/{templateId}") {
			templateID, err := parseTemplateID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid template ID", logger), nil
			}
			return handleDeleteTemplate(ctx, templateID, claims), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	default:
		return api.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed", logger), nil
	}
}

func parseTemplateID(request events.APIGatewayProxyRequest) (int64, error) {
	return strconv.ParseInt(request.PathParameters["templateId"], 10, 64)
}

// handleCreateTemplate handles POST /templates
func handleCreateTemplate(ctx context.Context, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can create templates", logger)
	}

	var createReq models.CreateTemplateRequest
	if err := api.ParseJSONBody(body, &createReq); err != nil {
		logger.WithError(err).Error("Failed to parse create template request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	template, err := templateRepository.CreateTemplate(ctx, claims.UserID, &createReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusCreated, template, logger)
}

// handleGetTemplates handles GET /templates. Only active templates are
// returned unless is_active=false asks for the full list.
func handleGetTemplates(ctx context.Context, params map[string]string) events.APIGatewayProxyResponse {
	includeInactive := params["is_active"] == "false"

	templates, err := templateRepository.GetTemplates(ctx, includeInactive)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, models.TemplateListResponse{Templates: templates}, logger)
}

// handleGetTemplate handles GET /templates/{templateId}
func handleGetTemplate(ctx context.Context, templateID int64) events.APIGatewayProxyResponse {
	template, err := templateRepository.GetTemplate(ctx, templateID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, template, logger)
}

// handleUpdateTemplate handles PUT /templates/{templateId}
func handleUpdateTemplate(ctx context.Context, templateID int64, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can update templates", logger)
	}

	var updateReq models.UpdateTemplateRequest
	if err := api.ParseJSONBody(body, &updateReq); err != nil {
		logger.WithError(err).Error("Failed to parse update template request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	template, err := templateRepository.UpdateTemplate(ctx, templateID, &updateReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, template, logger)
}

// handleDeleteTemplate handles DELETE /templates/{templateId}
func handleDeleteTemplate(ctx context.Context, templateID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can delete templates", logger)
	}

	if err := templateRepository.DeleteTemplate(ctx, templateID); err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, map[string]string{"message": "Template deleted successfully"}, logger)
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

	logger.WithField("operation", "init").Info("Template Management Lambda initialization completed successfully")
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

	// Initialize template repository
	templateRepository = &data.TemplateDao{
		DB:     sqlDB,
		Logger: logger,
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("operation", "setupPostgresSQLClient").Debug("PostgreSQL client initialized successfully")
	}
	return nil
}
