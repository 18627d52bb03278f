package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ventnav/lib/workflow"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// SuccessResponse creates a successful API Gateway response
func SuccessResponse(statusCode int, data interface{}, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal response data")
		return ErrorResponse(http.StatusInternalServerError, "Internal server error", logger)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
			"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
		},
	}
}

// ErrorResponse creates an error API Gateway response
func ErrorResponse(statusCode int, message string, logger *logrus.Logger) events.APIGatewayProxyResponse {
	errorData := map[string]interface{}{
		"error":   true,
		"message": message,
		"status":  statusCode,
	}

	body, err := json.Marshal(errorData)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal error response")
		body = []byte(`{"error":true,"message":"Internal server error","status":500}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
			"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
		},
	}
}

// WorkflowErrorResponse maps a workflow error to the matching HTTP status:
// validation 400, authorization 403, not found 404, conflict 409. Anything
// else is treated as an internal error and its detail is kept out of the
// response body.
func WorkflowErrorResponse(err error, logger *logrus.Logger) events.APIGatewayProxyResponse {
	var validationErr *workflow.ValidationError
	var authErr *workflow.AuthorizationError
	var notFoundErr *workflow.NotFoundError
	var conflictErr *workflow.ConflictError

	switch {
	case errors.As(err, &validationErr):
		return ErrorResponse(http.StatusBadRequest, validationErr.Message, logger)
	case errors.As(err, &authErr):
		return ErrorResponse(http.StatusForbidden, authErr.Message, logger)
	case errors.As(err, &notFoundErr):
		return ErrorResponse(http.StatusNotFound, notFoundErr.Message, logger)
	case errors.As(err, &conflictErr):
		return ErrorResponse(http.StatusConflict, conflictErr.Message, logger)
	default:
		logger.WithError(err).Error("Unhandled error")
		return ErrorResponse(http.StatusInternalServerError, "Internal server error", logger)
	}
}

// ParseJSONBody parses a JSON request body into the target struct
func ParseJSONBody(body string, target interface{}) error {
	if body == "" {
		return fmt.Errorf("request body is empty")
	}
	if err := json.Unmarshal([]byte(body), target); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
