package workflow

import (
	"testing"

	"ventnav/lib/models"

	"github.com/stretchr/testify/assert"
)

func Test_InitialStatus(t *testing.T) {
	assert.Equal(t, models.JobStatusDraft, InitialStatus(nil))
	assert.Equal(t, models.JobStatusAssigned, InitialStatus(int64Ptr(3)))
}

func Test_IsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.JobStatusApproved))
	assert.True(t, IsTerminal(models.JobStatusRejected))
	assert.False(t, IsTerminal(models.JobStatusSubmitted))
	assert.False(t, IsTerminal(models.JobStatusDraft))
}

func Test_ValidateStatusChange_SameStatusIsNoOp(t *testing.T) {
	//Act
	err := ValidateStatusChange(models.JobStatusApproved, models.JobStatusApproved, false, false, false)

	//Assert
	assert.NoError(t, err)
}

func Test_ValidateStatusChange_AssignedToDraft(t *testing.T) {
	//Act
	err := ValidateStatusChange(models.JobStatusAssigned, models.JobStatusDraft, false, false, false)

	//Assert
	assert.NoError(t, err)
}

func Test_ValidateStatusChange_InProgressToDraftRejected(t *testing.T) {
	//Act
	err := ValidateStatusChange(models.JobStatusInProgress, models.JobStatusDraft, false, false, false)

	//Assert
	assert.EqualError(t, err, "job cannot revert to draft from in_progress")
	assert.IsType(t, &ConflictError{}, err)
}

func Test_ValidateStatusChange_AssignedRequiresEngineer(t *testing.T) {
	//Act
	errNoEngineer := ValidateStatusChange(models.JobStatusDraft, models.JobStatusAssigned, false, false, false)
	errWithEngineer := ValidateStatusChange(models.JobStatusDraft, models.JobStatusAssigned, true, false, false)

	//Assert
	assert.EqualError(t, errNoEngineer, "engineer required to assign a job")
	assert.IsType(t, &ValidationError{}, errNoEngineer)
	assert.NoError(t, errWithEngineer)
}

func Test_ValidateStatusChange_RejectedToAssignedNeedsReviewer(t *testing.T) {
	//Act
	errAsEngineer := ValidateStatusChange(models.JobStatusRejected, models.JobStatusAssigned, true, false, false)
	errAsReviewer := ValidateStatusChange(models.JobStatusRejected, models.JobStatusAssigned, true, false, true)

	//Assert
	assert.EqualError(t, errAsEngineer, "only a reviewer can re-open a rejected job")
	assert.IsType(t, &AuthorizationError{}, errAsEngineer)
	assert.NoError(t, errAsReviewer)
}

func Test_ValidateStatusChange_ReopenRequiresEngineer(t *testing.T) {
	//Act
	// A reviewer re-opening a rejected job still needs an engineer on it
	err := ValidateStatusChange(models.JobStatusRejected, models.JobStatusAssigned, false, false, true)

	//Assert
	assert.EqualError(t, err, "engineer required to assign a job")
}

func Test_ValidateStatusChange_ApprovedIsImmutable(t *testing.T) {
	//Act
	err := ValidateStatusChange(models.JobStatusApproved, models.JobStatusAssigned, true, false, true)

	//Assert
	assert.EqualError(t, err, "job cannot be assigned from approved")
}

func Test_ValidateStatusChange_SubmitRequiresCompleteCaptures(t *testing.T) {
	//Act
	errIncomplete := ValidateStatusChange(models.JobStatusInProgress, models.JobStatusSubmitted, true, false, false)
	errComplete := ValidateStatusChange(models.JobStatusInProgress, models.JobStatusSubmitted, true, true, false)

	//Assert
	assert.EqualError(t, errIncomplete, "all areas must have pre and post images")
	assert.IsType(t, &ValidationError{}, errIncomplete)
	assert.NoError(t, errComplete)
}

func Test_ValidateStatusChange_ReviewOutcomesBlocked(t *testing.T) {
	//Act
	errApprove := ValidateStatusChange(models.JobStatusSubmitted, models.JobStatusApproved, true, true, true)
	errReject := ValidateStatusChange(models.JobStatusSubmitted, models.JobStatusRejected, true, true, true)

	//Assert
	assert.EqualError(t, errApprove, "review outcomes must go through the approve and reject operations")
	assert.EqualError(t, errReject, "review outcomes must go through the approve and reject operations")
}

func Test_ValidateStatusChange_UnknownStatus(t *testing.T) {
	//Act
	err := ValidateStatusChange(models.JobStatusDraft, "archived", false, false, false)

	//Assert
	assert.EqualError(t, err, "unknown job status: archived")
	assert.IsType(t, &ValidationError{}, err)
}

func Test_ValidateSubmit_FromDraft(t *testing.T) {
	//Act
	err := ValidateSubmit(models.JobStatusDraft, true)

	//Assert
	assert.EqualError(t, err, "job cannot be submitted from draft")
	assert.IsType(t, &ConflictError{}, err)
}

func Test_ValidateSubmit_FromAssigned(t *testing.T) {
	assert.NoError(t, ValidateSubmit(models.JobStatusAssigned, true))
	assert.NoError(t, ValidateSubmit(models.JobStatusInProgress, true))
}

func Test_ValidateReview_NotSubmitted(t *testing.T) {
	//Act
	err := ValidateReview(models.JobStatusInProgress)

	//Assert
	assert.EqualError(t, err, "job not awaiting review")
	assert.IsType(t, &ConflictError{}, err)
}

func Test_ValidateReview_Submitted(t *testing.T) {
	assert.NoError(t, ValidateReview(models.JobStatusSubmitted))
}

func Test_ValidateRejectReason(t *testing.T) {
	//Arrange
	blank := "   "
	ok := "  pre images out of focus "

	//Act
	_, errNil := ValidateRejectReason(nil)
	_, errBlank := ValidateRejectReason(&blank)
	trimmed, errOK := ValidateRejectReason(&ok)

	//Assert
	assert.EqualError(t, errNil, "rejection reason required")
	assert.EqualError(t, errBlank, "rejection reason required")
	assert.NoError(t, errOK)
	assert.Equal(t, "pre images out of focus", trimmed)
}

func Test_StatusAfterEngineerCleared(t *testing.T) {
	assert.Equal(t, models.JobStatusDraft, StatusAfterEngineerCleared(models.JobStatusAssigned))
	assert.Equal(t, models.JobStatusDraft, StatusAfterEngineerCleared(models.JobStatusInProgress))
	assert.Equal(t, models.JobStatusSubmitted, StatusAfterEngineerCleared(models.JobStatusSubmitted))
	assert.Equal(t, models.JobStatusApproved, StatusAfterEngineerCleared(models.JobStatusApproved))
	assert.Equal(t, models.JobStatusRejected, StatusAfterEngineerCleared(models.JobStatusRejected))
}
