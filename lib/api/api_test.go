package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ventnav/lib/workflow"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_SuccessResponse(t *testing.T) {
	//Arrange
	logger := logrus.New()
	data := map[string]string{"message": "ok"}

	//Act
	response := SuccessResponse(http.StatusCreated, data, logger)

	//Assert
	assert.Equal(t, http.StatusCreated, response.StatusCode)
	assert.Equal(t, `{"message":"ok"}`, response.Body)
	assert.Equal(t, "application/json", response.Headers["Content-Type"])
}

func Test_ErrorResponse(t *testing.T) {
	//Arrange
	logger := logrus.New()

	//Act
	response := ErrorResponse(http.StatusNotFound, "job not found", logger)

	//Assert
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(response.Body), &body))
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "job not found", body["message"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

func Test_WorkflowErrorResponse_StatusMapping(t *testing.T) {
	//Arrange
	logger := logrus.New()
	cases := []struct {
		err      error
		expected int
	}{
		{workflow.NewValidationError("scheduled date cannot be in the past"), http.StatusBadRequest},
		{workflow.NewAuthorizationError("only the assigned engineer can capture images"), http.StatusForbidden},
		{workflow.NewNotFoundError("job not found"), http.StatusNotFound},
		{workflow.NewConflictError("job not awaiting review"), http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		//Act
		response := WorkflowErrorResponse(tc.err, logger)

		//Assert
		assert.Equal(t, tc.expected, response.StatusCode)
	}
}

func Test_WorkflowErrorResponse_WrappedError(t *testing.T) {
	//Arrange
	logger := logrus.New()
	wrapped := fmt.Errorf("update job: %w", workflow.NewConflictError("job not awaiting review"))

	//Act
	response := WorkflowErrorResponse(wrapped, logger)

	//Assert
	assert.Equal(t, http.StatusConflict, response.StatusCode)
	assert.Contains(t, response.Body, "job not awaiting review")
}

func Test_WorkflowErrorResponse_InternalDetailHidden(t *testing.T) {
	//Arrange
	logger := logrus.New()

	//Act
	response := WorkflowErrorResponse(errors.New("pq: relation does not exist"), logger)

	//Assert
	assert.NotContains(t, response.Body, "pq:")
	assert.Contains(t, response.Body, "Internal server error")
}

func Test_ParseJSONBody(t *testing.T) {
	//Arrange
	var target struct {
		Title string `json:"title"`
	}

	//Act + Assert
	assert.Error(t, ParseJSONBody("", &target))
	assert.Error(t, ParseJSONBody("{not json", &target))
	assert.NoError(t, ParseJSONBody(`{"title":"Duct clean"}`, &target))
	assert.Equal(t, "Duct clean", target.Title)
}
