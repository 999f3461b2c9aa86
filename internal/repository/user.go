package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hsrehman/SafeHaven-sub000/internal/database"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

// UserRepository handles staff account data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new staff account
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	// Default to staff role if not specified
	role := user.Role
	if role == "" {
		role = model.UserRoleStaff
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			name: IF $name IS NOT NULL THEN $name ELSE NONE END,
			role: $role,
			shelter: IF $shelter IS NOT NULL THEN type::record($shelter) ELSE NONE END,
			email_verified: $email_verified,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":          user.Email,
		"hash":           ptrToNone(user.Hash),
		"name":           ptrToNone(user.Name),
		"role":           string(role),
		"shelter":        ptrToNone(user.ShelterID),
		"email_verified": user.EmailVerified,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.Role = role
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a staff account by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.queryUser(ctx, query, vars)
}

// GetByEmail retrieves a staff account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	return r.queryUser(ctx, query, vars)
}

// UpdatePassword updates a staff account's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE type::record($id) SET hash = $hash, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"hash": hash,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetRole updates a staff account's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	query := `UPDATE type::record($id) SET role = $role, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"role": string(role),
	}

	return r.db.Execute(ctx, query, vars)
}

func (r *UserRepository) queryUser(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := unwrapRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserRecord(data), nil
}

func parseUserRecord(data map[string]interface{}) *model.User {
	user := &model.User{
		ID:            convertSurrealID(data["id"]),
		Email:         getString(data, "email"),
		Hash:          getStringPtr(data, "hash"),
		Name:          getStringPtr(data, "name"),
		Role:          model.UserRole(getString(data, "role")),
		EmailVerified: getBool(data, "email_verified"),
		CreatedOn:     timeOrZero(getTime(data, "created_on")),
		UpdatedOn:     timeOrZero(getTime(data, "updated_on")),
	}
	if shelter, ok := data["shelter"]; ok && shelter != nil {
		id := convertSurrealID(shelter)
		if id != "" {
			user.ShelterID = &id
		}
	}
	return user
}
