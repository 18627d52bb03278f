package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
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

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 1 * time.Hour
)

// Global variables for Lambda cold start optimization
var (
	logger            *logrus.Logger
	isLocal           bool
	ssmRepository     data.SSMRepository
	ssmParams         map[string]string
	sqlDB             *sql.DB
	captureRepository data.CaptureRepository
	jobRepository     data.JobRepository
	s3Client          clients.S3ClientInterface
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"operation": "Handler",
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"resource":  request.Resource,
	}).Info("Capture management request received")

	// Extract claims from JWT token via API Gateway authorizer
	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	jobID, err := strconv.ParseInt(request.PathParameters["jobId"], 10, 64)
	if err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid job ID", logger), nil
	}

	switch request.HTTPMethod {
	case http.MethodGet:
		// GET /jobs/{jobId}/captures - List captures with completion percentage
		if strings.Contains(request.Resource, "/jobs/{jobId}/captures") {
			return handleGetCaptures(ctx, jobID, claims), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodPost:
		captureID, err := strconv.ParseInt(request.PathParameters["captureId"], 10, 64)
		if err != nil {
			return api.ErrorResponse(http.StatusBadRequest, "Invalid capture ID", logger), nil
		}
		side := request.PathParameters["side"]
		if !models.IsValidCaptureSide(side) {
			return api.ErrorResponse(http.StatusBadRequest, "Capture side must be pre or post", logger), nil
		}

		// POST /jobs/{jobId}/captures/{captureId}/{side}/upload-url - Presigned upload
		if strings.Contains(request.Resource, "/upload-url") {
			return handleUploadURL(ctx, jobID, captureID, side, claims, request.Body), nil
		}

		// POST /jobs/{jobId}/captures/{captureId}/{side}/confirm - Confirm upload
		if strings.Contains(request.Resource, "/confirm") {
			return handleConfirmUpload(ctx, jobID, captureID, side, claims, request.Body), nil
		}

		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	case http.MethodPut:
		// PUT /jobs/{jobId}/captures/{captureId}/notes - Update capture notes
		if strings.Contains(request.Resource, "/captures/{captureId}/notes") {
			captureID, err := strconv.ParseInt(request.PathParameters["captureId"], 10, 64)
			if err != nil {
				return api.ErrorResponse(http.StatusBadRequest, "Invalid capture ID", logger), nil
			}
			return handleUpdateNotes(ctx, jobID, captureID, claims, request.Body), nil
		}
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil

	default:
		return api.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed", logger), nil
	}
}

// handleGetCaptures handles GET /jobs/{jobId}/captures
func handleGetCaptures(ctx context.Context, jobID int64, claims *auth.Claims) events.APIGatewayProxyResponse {
	job, err := jobRepository.GetJob(ctx, jobID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}
	if claims.IsEngineer() && (job.EngineerID == nil || *job.EngineerID != claims.UserID) {
		return api.ErrorResponse(http.StatusForbidden, "Job is not assigned to you", logger)
	}

	response, err := captureRepository.GetJobCaptures(ctx, jobID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	for i := range response.Captures {
		presignCapture(&response.Captures[i])
	}

	return api.SuccessResponse(http.StatusOK, response, logger)
}

// handleUploadURL handles POST /jobs/{jobId}/captures/{captureId}/{side}/upload-url.
// The gate runs here so engineers find out before uploading, and again at
// confirm so nothing slips through between the two calls.
func handleUploadURL(ctx context.Context, jobID, captureID int64, side string, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	var uploadReq models.CaptureUploadRequest
	if err := api.ParseJSONBody(body, &uploadReq); err != nil {
		logger.WithError(err).Error("Failed to parse upload request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	if uploadReq.FileName == "" {
		return api.ErrorResponse(http.StatusBadRequest, "file_name is required", logger)
	}
	if !models.ValidateImageType(uploadReq.FileName) {
		return api.ErrorResponse(http.StatusBadRequest, "File type not allowed. Use jpg, jpeg, png, webp or heic", logger)
	}

	_, capture, err := captureRepository.PrepareCaptureUpload(ctx, jobID, captureID, side, claims.UserID)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	s3Key := models.GenerateCaptureKey(jobID, capture.TemplateAreaID, side, uploadReq.FileName)
	thumbnailKey := models.ThumbnailKeyFor(s3Key)

	uploadURL, err := s3Client.GenerateUploadURL(s3Key, uploadURLExpiry)
	if err != nil {
		logger.WithError(err).Error("Failed to generate upload URL")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to generate upload URL", logger)
	}
	thumbnailURL, err := s3Client.GenerateUploadURL(thumbnailKey, uploadURLExpiry)
	if err != nil {
		logger.WithError(err).Error("Failed to generate thumbnail upload URL")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to generate upload URL", logger)
	}

	return api.SuccessResponse(http.StatusOK, models.CaptureUploadResponse{
		UploadURL:          uploadURL,
		ThumbnailUploadURL: thumbnailURL,
		S3Key:              s3Key,
		ThumbnailKey:       thumbnailKey,
		ExpiresAt:          time.Now().Add(uploadURLExpiry).Format(time.RFC3339),
	}, logger)
}

// handleConfirmUpload handles POST /jobs/{jobId}/captures/{captureId}/{side}/confirm
func handleConfirmUpload(ctx context.Context, jobID, captureID int64, side string, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	var confirmReq models.CaptureConfirmRequest
	if err := api.ParseJSONBody(body, &confirmReq); err != nil {
		logger.WithError(err).Error("Failed to parse confirm request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	if confirmReq.S3Key == "" {
		return api.ErrorResponse(http.StatusBadRequest, "s3_key is required", logger)
	}

	exists, err := s3Client.ObjectExists(confirmReq.S3Key)
	if err != nil {
		logger.WithError(err).Error("Failed to check uploaded object")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to verify upload", logger)
	}
	if !exists {
		return api.ErrorResponse(http.StatusBadRequest, "Uploaded object not found", logger)
	}

	capture, staleKeys, err := captureRepository.ConfirmCaptureUpload(ctx, jobID, captureID, side, claims.UserID, &confirmReq)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	// Replaced images are cleaned up after the database commit
	for _, key := range staleKeys {
		if err := s3Client.DeleteObject(key); err != nil {
			logger.WithError(err).WithField("key", key).Warn("Failed to delete replaced capture image")
		}
	}

	presignCapture(capture)
	return api.SuccessResponse(http.StatusOK, capture, logger)
}

// handleUpdateNotes handles PUT /jobs/{jobId}/captures/{captureId}/notes
func handleUpdateNotes(ctx context.Context, jobID, captureID int64, claims *auth.Claims, body string) events.APIGatewayProxyResponse {
	var notesReq models.UpdateCaptureNotesRequest
	if err := api.ParseJSONBody(body, &notesReq); err != nil {
		logger.WithError(err).Error("Failed to parse notes request")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger)
	}

	capture, err := captureRepository.UpdateCaptureNotes(ctx, jobID, captureID, claims.UserID, notesReq.Notes)
	if err != nil {
		return api.WorkflowErrorResponse(err, logger)
	}

	presignCapture(capture)
	return api.SuccessResponse(http.StatusOK, capture, logger)
}

// presignCapture swaps stored object keys for presigned download URLs.
// Presign failures leave the key in place rather than failing the read.
func presignCapture(capture *models.WorkCapture) {
	presign := func(key *string) *string {
		if key == nil {
			return nil
		}
		url, err := s3Client.GenerateDownloadURL(*key, downloadURLExpiry)
		if err != nil {
			logger.WithError(err).WithField("key", *key).Warn("Failed to presign capture image")
			return key
		}
		return &url
	}

	capture.PreImageURL = presign(capture.PreImageURL)
	capture.PreThumbnailURL = presign(capture.PreThumbnailURL)
	capture.PostImageURL = presign(capture.PostImageURL)
	capture.PostThumbnailURL = presign(capture.PostThumbnailURL)
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

	logger.WithField("operation", "init").Info("Capture Management Lambda initialization completed successfully")
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

	// Initialize capture and job repositories
	captureRepository = &data.CaptureDao{
		DB:     sqlDB,
		Logger: logger,
	}
	jobRepository = &data.JobDao{
		DB:     sqlDB,
		Logger: logger,
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("operation", "setupPostgresSQLClient").Debug("PostgreSQL client initialized successfully")
	}
	return nil
}
