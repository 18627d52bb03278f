package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ventnav/lib/auth"
	"ventnav/lib/clients"
	"ventnav/lib/models"
	"ventnav/lib/util"
	"ventnav/lib/workflow"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, createdBy int64, req *models.CreateUserRequest) (*models.CreateUserResponse, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	GetUserByCognitoID(ctx context.Context, cognitoID string) (*models.User, error)
	GetUsers(ctx context.Context, filters map[string]string) ([]models.User, error)
	UpdateUser(ctx context.Context, userID int64, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// UserDao implements the UserRepository interface. User provisioning spans
// Cognito and Postgres; Cognito is the source of truth for credentials,
// iam.users for role and assignment state.
type UserDao struct {
	DB      *sql.DB
	Cognito clients.CognitoClientInterface
	Logger  *logrus.Logger
}

const userSelect = `
	SELECT id, cognito_id, email, full_name, role, is_active,
		   phone_number, address, created_by, created_at, updated_at
	FROM iam.users`

// CreateUser provisions the account in Cognito first, then records it in
// iam.users. A Cognito failure aborts before any database write; a database
// failure leaves a Cognito account the operator can delete and retry.
func (dao *UserDao) CreateUser(ctx context.Context, createdBy int64, req *models.CreateUserRequest) (*models.CreateUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if email == "" || fullName == "" {
		return nil, workflow.NewValidationError("email and full_name are required")
	}
	if !auth.IsValidRole(req.Role) {
		return nil, workflow.NewValidationError("role must be super_admin, trade_manager or engineer")
	}

	var exists bool
	if err := dao.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM iam.users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, workflow.NewConflictError("a user with this email already exists")
	}

	cognitoID, err := dao.Cognito.CreateUser(ctx, email, fullName, req.Role)
	if err != nil {
		dao.Logger.WithError(err).WithField("email", email).Error("Failed to create Cognito user")
		return nil, fmt.Errorf("failed to create cognito user: %w", err)
	}

	var user models.User
	user.CognitoID = cognitoID
	user.Email = email
	user.FullName = fullName
	user.Role = req.Role
	user.IsActive = true
	user.Phone = util.TrimToNull(req.Phone)
	user.Address = util.TrimToNull(req.Address)
	user.CreatedBy = &createdBy

	err = dao.DB.QueryRowContext(ctx, `
		INSERT INTO iam.users (cognito_id, email, full_name, role, is_active, phone_number, address, created_by)
		VALUES ($1, $2, $3, $4, true, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		cognitoID, email, fullName, req.Role,
		stringOrNull(user.Phone), stringOrNull(user.Address), createdBy,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, workflow.NewConflictError("a user with this email already exists")
		}
		dao.Logger.WithError(err).Error("Failed to create user record")
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email,
		"role":    req.Role,
	}).Info("User created")

	return &models.CreateUserResponse{
		User:    user,
		Message: "User created. A temporary password has been emailed.",
	}, nil
}

// GetUser retrieves a single user by ID
func (dao *UserDao) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := scanUser(dao.DB.QueryRowContext(ctx, userSelect+` WHERE id = $1`, userID))
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("user not found")
	}
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByCognitoID retrieves a user by Cognito sub, used on first login
func (dao *UserDao) GetUserByCognitoID(ctx context.Context, cognitoID string) (*models.User, error) {
	user, err := scanUser(dao.DB.QueryRowContext(ctx, userSelect+` WHERE cognito_id = $1`, cognitoID))
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsers lists users with optional role and is_active filters
func (dao *UserDao) GetUsers(ctx context.Context, filters map[string]string) ([]models.User, error) {
	query := userSelect
	args := []interface{}{}
	conditions := []string{}
	argIndex := 1

	if role := filters["role"]; role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIndex))
		args = append(args, role)
		argIndex++
	}
	if active := filters["is_active"]; active != "" {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, active == "true")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY full_name, id"

	rows, err := dao.DB.QueryContext(ctx, query, args...)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to get users")
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan user row")
			continue
		}
		users = append(users, *user)
	}

	return users, nil
}

// UpdateUser applies a partial update. Deactivating a user clears their job
// assignments in the same transaction: assigned and in_progress jobs fall
// back to draft, submitted and reviewed jobs keep their status with the
// engineer removed. Cognito access is disabled or enabled to match.
func (dao *UserDao) UpdateUser(ctx context.Context, userID int64, req *models.UpdateUserRequest) (*models.User, error) {
	tx, err := dao.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRowContext(ctx, userSelect+` WHERE id = $1 FOR UPDATE`, userID))
	if err == sql.ErrNoRows {
		return nil, workflow.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	if req.Email != nil {
		if trimmed := strings.ToLower(strings.TrimSpace(*req.Email)); trimmed != "" {
			user.Email = trimmed
		}
	}
	if req.FullName != nil {
		if trimmed := strings.TrimSpace(*req.FullName); trimmed != "" {
			user.FullName = trimmed
		}
	}
	if req.Phone != nil {
		user.Phone = util.TrimToNull(req.Phone)
	}
	if req.Address != nil {
		user.Address = util.TrimToNull(req.Address)
	}

	deactivating := false
	reactivating := false
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		deactivating = !*req.IsActive
		reactivating = *req.IsActive
		user.IsActive = *req.IsActive
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE iam.users
		SET email = $1, full_name = $2, is_active = $3, phone_number = $4, address = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $6`,
		user.Email, user.FullName, user.IsActive,
		stringOrNull(user.Phone), stringOrNull(user.Address), userID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, workflow.NewConflictError("a user with this email already exists")
		}
		dao.Logger.WithError(err).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if deactivating && user.Role == auth.RoleEngineer {
		result, err := tx.ExecContext(ctx, `
			UPDATE field.jobs
			SET engineer_id = NULL,
				status = CASE WHEN status IN ('assigned', 'in_progress') THEN 'draft' ELSE status END,
				updated_at = CURRENT_TIMESTAMP
			WHERE engineer_id = $1`, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to clear job assignments: %w", err)
		}
		if cleared, err := result.RowsAffected(); err == nil && cleared > 0 {
			dao.Logger.WithFields(logrus.Fields{
				"user_id":      userID,
				"jobs_cleared": cleared,
			}).Info("Cleared job assignments for deactivated engineer")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user update: %w", err)
	}

	// Keep Cognito in step after the database commit; a failure here only
	// affects login, not assignment state, and the operator can retry.
	if deactivating {
		if err := dao.Cognito.DisableUser(ctx, user.Email); err != nil {
			dao.Logger.WithError(err).WithField("email", user.Email).Warn("Failed to disable Cognito user")
		}
	}
	if reactivating {
		if err := dao.Cognito.EnableUser(ctx, user.Email); err != nil {
			dao.Logger.WithError(err).WithField("email", user.Email).Warn("Failed to enable Cognito user")
		}
	}

	return user, nil
}

// DeleteUser removes a user from Cognito and iam.users. Users referenced by
// jobs cannot be deleted; deactivate them instead.
func (dao *UserDao) DeleteUser(ctx context.Context, userID int64) error {
	user, err := dao.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	var refCount int
	if err := dao.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM field.jobs
		WHERE engineer_id = $1 OR created_by = $1`, userID).Scan(&refCount); err != nil {
		return fmt.Errorf("failed to check user references: %w", err)
	}
	if refCount > 0 {
		return workflow.NewConflictError("user is referenced by jobs and cannot be deleted")
	}

	if err := dao.Cognito.DeleteUser(ctx, user.Email); err != nil {
		dao.Logger.WithError(err).WithField("email", user.Email).Warn("Failed to delete Cognito user")
	}

	if _, err := dao.DB.ExecContext(ctx, `DELETE FROM iam.users WHERE id = $1`, userID); err != nil {
		dao.Logger.WithError(err).Error("Failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	dao.Logger.WithField("user_id", userID).Info("User deleted")
	return nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var phone, address sql.NullString
	var createdBy sql.NullInt64

	err := row.Scan(
		&user.ID, &user.CognitoID, &user.Email, &user.FullName, &user.Role, &user.IsActive,
		&phone, &address, &createdBy, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Phone = nullStringPtr(phone)
	user.Address = nullStringPtr(address)
	user.CreatedBy = nullInt64Ptr(createdBy)

	return &user, nil
}
