package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hsrehman/SafeHaven-sub000/internal/database"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

// ApplicationRepository handles shelter application data access
type ApplicationRepository struct {
	db database.Database
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db database.Database) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create stores a new application
func (r *ApplicationRepository) Create(ctx context.Context, application *model.Application) error {
	query := `
		CREATE application CONTENT {
			applicant: type::record($applicant),
			shelter: type::record($shelter),
			status: $status,
			percentage_match: IF $percentage_match IS NOT NULL THEN $percentage_match ELSE NONE END,
			note: IF $note IS NOT NULL THEN $note ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"applicant":        application.ApplicantID,
		"shelter":          application.ShelterID,
		"status":           string(application.Status),
		"percentage_match": intPtrToNone(application.PercentageMatch),
		"note":             ptrToNone(application.Note),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: application already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	application.ID = created.ID
	application.CreatedOn = created.CreatedOn
	application.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*model.Application, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

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
	return parseApplicationRecord(data), nil
}

// GetByApplicantAndShelter retrieves the most recent application one
// applicant has made to one shelter, if any.
func (r *ApplicationRepository) GetByApplicantAndShelter(ctx context.Context, applicantID, shelterID string) (*model.Application, error) {
	query := `
		SELECT * FROM application
		WHERE applicant = type::record($applicant) AND shelter = type::record($shelter)
		ORDER BY created_on DESC LIMIT 1
	`
	vars := map[string]interface{}{
		"applicant": applicantID,
		"shelter":   shelterID,
	}

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
	return parseApplicationRecord(data), nil
}

// ListByApplicant returns all applications submitted by one applicant
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	query := `
		SELECT * FROM application
		WHERE applicant = type::record($applicant)
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"applicant": applicantID}

	return r.listApplications(ctx, query, vars)
}

// ListByShelter returns all applications received by one shelter
func (r *ApplicationRepository) ListByShelter(ctx context.Context, shelterID string) ([]*model.Application, error) {
	query := `
		SELECT * FROM application
		WHERE shelter = type::record($shelter)
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"shelter": shelterID}

	return r.listApplications(ctx, query, vars)
}

// UpdateStatus moves an application to a new status, optionally recording a
// staff note.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, staffNote *string) error {
	query := `
		UPDATE type::record($id) SET
			status = $status,
			staff_note = IF $staff_note IS NOT NULL THEN $staff_note ELSE staff_note END,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":         id,
		"status":     string(status),
		"staff_note": ptrToNone(staffNote),
	}

	return r.db.Execute(ctx, query, vars)
}

// ListOpen returns all applications still in a non-terminal status
func (r *ApplicationRepository) ListOpen(ctx context.Context) ([]*model.Application, error) {
	query := `
		SELECT * FROM application
		WHERE status IN ["pending", "reviewing"]
		ORDER BY created_on ASC
	`

	return r.listApplications(ctx, query, map[string]interface{}{})
}

// UpdateMatch rewrites the stored match percentage. A nil value clears the
// score, which happens when profile edits make the pair ineligible.
func (r *ApplicationRepository) UpdateMatch(ctx context.Context, id string, percentageMatch *int) error {
	query := `
		UPDATE type::record($id) SET
			percentage_match = IF $percentage_match IS NOT NULL THEN $percentage_match ELSE NONE END,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":               id,
		"percentage_match": intPtrToNone(percentageMatch),
	}

	return r.db.Execute(ctx, query, vars)
}

func (r *ApplicationRepository) listApplications(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Application, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, err := unwrapRecords(result)
	if err != nil {
		return nil, err
	}

	applications := make([]*model.Application, 0, len(records))
	for _, data := range records {
		applications = append(applications, parseApplicationRecord(data))
	}
	return applications, nil
}

func parseApplicationRecord(data map[string]interface{}) *model.Application {
	return &model.Application{
		ID:              convertSurrealID(data["id"]),
		ApplicantID:     convertSurrealID(data["applicant"]),
		ShelterID:       convertSurrealID(data["shelter"]),
		Status:          model.ApplicationStatus(getString(data, "status")),
		PercentageMatch: getIntPtr(data, "percentage_match"),
		Note:            getStringPtr(data, "note"),
		StaffNote:       getStringPtr(data, "staff_note"),
		CreatedOn:       timeOrZero(getTime(data, "created_on")),
		UpdatedOn:       timeOrZero(getTime(data, "updated_on")),
	}
}
