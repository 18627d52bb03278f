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
	logger         *logrus.Logger
	isLocal        bool
	ssmRepository  data.SSMRepository
	ssmParams      map[string]string
	sqlDB          *sql.DB
	siteRepository data.SiteRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"operation": "Handler",
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"resource":  request.Resource,
	}).Info("Site management request received")

	// Extract claims from JWT token via API Gateway authorizer
	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch request.HTTPMethod {
	case http.MethodPost:
		// POST /sites - Create new site
		if request.Resource == "/sites" {
			return handleCreateSite(ctx, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodGet:
		// GET /sites - List sites, with optional search
		if request.Resource == "/sites" {
			return handleGetSites(ctx, request.QueryStringParameters), nil
		}

		// GET /sites/{siteId} - Get specific site
		if strings.Contains(request.Resource, "/sites/{siteId}") {
			siteID, err := parseSiteID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid site ID", logger), nil
			}
			return handleGetSite(ctx, siteID), nil
		}

		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodPut:
		// PUT /sites/{siteId} - Update site
		if strings.Contains(request.Resource, "/sites/{siteId}") {
			siteID, err := parseSiteID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid site ID", logger), nil
			}
			return handleUpdateSite(ctx, siteID, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodDelete:
		// DELETE /sites/{siteId} - Delete site
		if strings.Contains(request.Resource, "/sites/{siteId}") {
			siteID, err := parseSiteID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid site ID", logger), nil
			}
			return handleDeleteSite(ctx, siteID, claims), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	default:
		return api.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed", logger), nil
	}
}

func parseSiteID(request events.APIGatewayProxyRequest) (int64, error) {
	return strconv.ParseInt(request.PathParameters["siteId"], 10, 64)
}

// handleCreateSite handles POST /sites
func handleCreateSite(ctx context.Context, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can create sites", logger)
	}

	var createReq models.CreateSiteRequest
	if err := api.ParseJSONBody(body, &createReq); err != nil {
		logger.WithError(err).Error("Failed to parse create site request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	site, err := siteRepository.CreateSite(ctx, &createReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusCreated, site, logger)
}

// handleGetSites handles GET /sites
func handleGetSites(ctx context.Context, params map[string]string) events.APIGatewayProxyResponse {
	sites, err := siteRepository.GetSites(ctx, params["search"])
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, models.SiteListResponse{
		Sites: sites,
		Total: len(sites),
	}, logger)
}

// handleGetSite handles GET /sites/{siteId}
func handleGetSite(ctx context.Context, siteID int64) events.APIGatewayProxyResponse {
	site, err := siteRepository.GetSite(ctx, siteID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, site, logger)
}

// handleUpdateSite handles PUT /sites/{siteId}
func handleUpdateSite(ctx context.Context, siteID int64, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can update sites", logger)
	}

	var updateReq models.UpdateSiteRequest
	if err := api.ParseJSONBody(body, &updateReq); err != nil {
		logger.WithError(err).Error("Failed to parse update site request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	site, err := siteRepository.UpdateSite(ctx, siteID, &updateReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, site, logger)
}

// handleDeleteSite handles DELETE /sites/{siteId}
func handleDeleteSite(ctx context.Context, siteID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can delete sites", logger)
	}

	if err := siteRepository.DeleteSite(ctx, siteID); err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, map[string]string{"message": "Site deleted successfully"}, logger)
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

	logger.WithField("operation", "init").Info("Site Management Lambda initialization completed successfully")
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

	// Initialize site repository
	siteRepository = &data.SiteDao{
		DB:     sqlDB,
		Logger: logger,
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("operation", "setupPostgresSQLClient").Debug("PostgreSQL client initialized successfully")
	}
	return nil
}
