package service

import (
	"context"
	"strings"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

// ApplicantRepository defines the interface for applicant storage
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *model.Applicant) error
	GetByID(ctx context.Context, id string) (*model.Applicant, error)
	Update(ctx context.Context, applicant *model.Applicant) error
	List(ctx context.Context, limit, offset int) ([]*model.Applicant, error)
}

// ApplicantService handles intake record operations
type ApplicantService struct {
	applicantRepo ApplicantRepository
}

// ApplicantServiceConfig holds configuration for the applicant service
type ApplicantServiceConfig struct {
	ApplicantRepo ApplicantRepository
}

// NewApplicantService creates a new applicant service
func NewApplicantService(cfg ApplicantServiceConfig) *ApplicantService {
	return &ApplicantService{applicantRepo: cfg.ApplicantRepo}
}

// CreateApplicant validates and stores a new intake record. The intake form
// leaves most fields optional; only a name and some location signal are
// required for the record to be matchable.
func (s *ApplicantService) CreateApplicant(ctx context.Context, applicant *model.Applicant) (*model.Applicant, error) {
	if err := validateApplicant(applicant); err != nil {
		return nil, err
	}

	applicant.FullName = strings.TrimSpace(applicant.FullName)
	if err := s.applicantRepo.Create(ctx, applicant); err != nil {
		return nil, err
	}
	return applicant, nil
}

// GetApplicant retrieves an intake record by ID
func (s *ApplicantService) GetApplicant(ctx context.Context, id string) (*model.Applicant, error) {
	applicant, err := s.applicantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, ErrApplicantNotFound
	}
	return applicant, nil
}

// UpdateApplicant validates and stores changes to an intake record
func (s *ApplicantService) UpdateApplicant(ctx context.Context, applicant *model.Applicant) (*model.Applicant, error) {
	existing, err := s.applicantRepo.GetByID(ctx, applicant.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrApplicantNotFound
	}

	if err := validateApplicant(applicant); err != nil {
		return nil, err
	}

	applicant.FullName = strings.TrimSpace(applicant.FullName)
	applicant.CreatedOn = existing.CreatedOn
	if err := s.applicantRepo.Update(ctx, applicant); err != nil {
		return nil, err
	}
	return applicant, nil
}

// ListApplicants returns a page of intake records for the staff portal
func (s *ApplicantService) ListApplicants(ctx context.Context, limit, offset int) ([]*model.Applicant, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.applicantRepo.List(ctx, limit, offset)
}

func validateApplicant(applicant *model.Applicant) error {
	if strings.TrimSpace(applicant.FullName) == "" {
		return ErrFullNameRequired
	}
	if strings.TrimSpace(applicant.Location) == "" && applicant.Coordinates == nil {
		return ErrLocationRequired
	}
	if applicant.Coordinates != nil {
		c := applicant.Coordinates
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			return ErrInvalidCoordinates
		}
	}
	if applicant.ChildrenCount != nil && *applicant.ChildrenCount < 0 {
		return ErrInvalidChildrenCount
	}
	return nil
}
