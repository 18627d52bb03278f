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
	logger        *logrus.Logger
	isLocal       bool
	ssmRepository data.SSMRepository
	ssmParams     map[string]string
	sqlDB         *sql.DB
	jobRepository data.JobRepository
	s3Client      clients.S3ClientInterface
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"operation": "Handler",
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"resource":  request.Resource,
	}).Info("Job management request received")

	// Extract claims from JWT token via API Gateway authorizer
	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch request.HTTPMethod {
	case http.MethodPost:
		// POST /jobs - Create new job
		if request.Resource == "/jobs" {
			return handleCreateJob(ctx, claims, request.Body), nil
		}

		// POST /jobs/{jobId}/submit - Engineer submits completed job
		if strings.Contains(request.Resource, "/jobs/{jobId}/submit") {
			jobID, err := parseJobID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid job ID", logger), nil
			}
			return handleSubmitJob(ctx, jobID, claims), nil
		}

		// POST /jobs/{jobId}/review - Approve or reject a submitted job
		if strings.Contains(request.Resource, "/jobs/{jobId}/review") {
			jobID, err := parseJobID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid job ID", logger), nil
			}
			return handleReviewJob(ctx, jobID, claims, request.Body), nil
		}

		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodGet:
		// GET /jobs - List jobs
		if request.Resource == "/jobs" {
			return handleGetJobs(ctx, claims, request.QueryStringParameters), nil
		}

		// GET /jobs/{jobId} - Get job detail
		if strings.Contains(request.Resource, "/jobs/{jobId}") {
			jobID, err := parseJobID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid job ID", logger), nil
			}
			return handleGetJob(ctx, jobID, claims), nil
		}

		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodPut:
		// PUT /jobs/{jobId} - Update job
		if strings.Contains(request.Resource, "/jobs/{jobId}") {
			jobID, err := parseJobID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid job ID", logger), nil
			}
			return handleUpdateJob(ctx, jobID, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodDelete:
		// DELETE /jobs/{jobId} - Delete job and its stored images
		if strings.Contains(request.Resource, "/jobs/{jobId}") {
			jobID, err := parseJobID(request)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid job ID", logger), nil
			}
			return handleDeleteJob(ctx, jobID, claims), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	default:
		return api.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed", logger), nil
	}
}

func parseJobID(request events.APIGatewayProxyRequest) (int64, error) {
	return strconv.ParseInt(request.PathParameters["jobId"], 10, 64)
}

// handleCreateJob handles POST /jobs
func handleCreateJob(ctx context.Context, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can create jobs", logger)
	}

	var createReq models.CreateJobRequest
	if err := api.ParseJSONBody(body, &createReq); err != nil {
		logger.WithError(err).Error("Failed to parse create job request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	if strings.TrimSpace(createReq.Title) == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Job title is required", logger)
	}
	if createReq.SiteID == 0 || createReq.TemplateID == 0 {
		return api.ErrorResponse(http.StatusBadRequest, "site_id and template_id are required", logger)
	}

	job, err := jobRepository.CreateJob(ctx, claims.UserID, &createReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusCreated, job, logger)
}

// handleGetJobs handles GET /jobs. Engineers only ever see their own jobs;
// any engineer_id filter they pass is overridden.
func handleGetJobs(ctx context.Context, claims *auth.Claims, filters map[string]string) events.APIGatewayProxyResponse {
	if filters == nil {
		filters = map[string]string{}
	}
	if claims.IsEngineer() {
		filters["engineer_id"] = strconv.FormatInt(claims.UserID, 10)
	}

	jobs, err := jobRepository.GetJobs(ctx, filters)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, models.JobListResponse{
		Jobs:  jobs,
		Total: len(jobs),
	}, logger)
}

// handleGetJob handles GET /jobs/{jobId}
func handleGetJob(ctx context.Context, jobID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	job, err := jobRepository.GetJob(ctx, jobID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	if claims.IsEngineer() && (job.EngineerID == nil || *job.EngineerID != claims.UserID) {
		return api.ErrorResponse(http.StatusForbidden, "Job is not assigned to you", logger)
	}

	return api.SuccessResponse(http.StatusOK, job, logger)
}

// handleUpdateJob handles PUT /jobs/{jobId}
func handleUpdateJob(ctx context.Context, jobID int64, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can update jobs", logger)
	}

	var updateReq models.UpdateJobRequest
	if err := api.ParseJSONBody(body, &updateReq); err != nil {
		logger.WithError(err).Error("Failed to parse update job request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	job, err := jobRepository.UpdateJob(ctx, jobID, claims.UserID, claims.CanManageJobs(), &updateReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, job, logger)
}

// handleDeleteJob handles DELETE /jobs/{jobId}. Image cleanup in S3 runs
// best-effort after the database delete commits.
func handleDeleteJob(ctx context.Context, jobID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can delete jobs", logger)
	}

	keys, err := jobRepository.DeleteJob(ctx, jobID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	for _, key := range keys {
		if err := s3Client.DeleteObject(key); err != nil {
			logger.WithError(err).WithField("key", key).Warn("Failed to delete capture image from S3")
		}
	}

	return api.SuccessResponse(http.StatusOK, map[string]string{"message": "Job deleted successfully"}, logger)
}

// handleSubmitJob handles POST /jobs/{jobId}/submit
func handleSubmitJob(ctx context.Context, jobID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	if !claims.IsEngineer() {
		return api.ErrorResponse(http.StatusForbidden, "Only engineers can submit jobs", logger)
	}

	job, err := jobRepository.SubmitForReview(ctx, jobID, claims.UserID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, job, logger)
}

// handleReviewJob handles POST /jobs/{jobId}/review
func handleReviewJob(ctx context.Context, jobID int64, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	if !claims.CanManageJobs() {
		return api.ErrorResponse(http.StatusForbidden, "Only managers can review jobs", logger)
	}

	var action models.JobReviewAction
	if err := api.ParseJSONBody(body, &action); err != nil {
		logger.WithError(err).Error("Failed to parse review request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	if action.Action != models.ReviewActionApprove && action.Action != models.ReviewActionReject {
		return api.ErrorResponse(http.StatusBadRequest, "Action must be approve or reject", logger)
	}

	job, err := jobRepository.ReviewJob(ctx, jobID, claims.UserID, &action)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	return api.SuccessResponse(http.StatusOK, job, logger)
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

	s3Client = clients.NewS3Client(isLocal, ssmParams[constants.CAPTURE_BUCKET_NAME])

	logger.WithField("operation", "init").Info("Job Management Lambda initialization completed successfully")
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

	// Initialize job repository
	jobRepository = &data.JobDao{
		DB:     sqlDB,
		Logger: logger,
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("operation", "setupPostgresSQLClient").Debug("PostgreSQL client initialized successfully")
	}
	return nil
}
