package service

import (
	"context"
	"strings"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

const maxNoteLength = 2000

// ApplicationRepository defines the interface for application storage
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByApplicantAndShelter(ctx context.Context, applicantID, shelterID string) (*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error)
	ListByShelter(ctx context.Context, shelterID string) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, staffNote *string) error
	ListOpen(ctx context.Context) ([]*model.Application, error)
	UpdateMatch(ctx context.Context, id string, percentageMatch *int) error
}

// ApplicationService handles the apply-to-shelter workflow
type ApplicationService struct {
	applicationRepo ApplicationRepository
	applicantRepo   MatchApplicantRepository
	shelterRepo     ShelterRepository
	engine          *MatchEngine
}

// ApplicationServiceConfig holds configuration for the application service
type ApplicationServiceConfig struct {
	ApplicationRepo ApplicationRepository
	ApplicantRepo   MatchApplicantRepository
	ShelterRepo     ShelterRepository
}

// NewApplicationService creates a new application service
func NewApplicationService(cfg ApplicationServiceConfig) *ApplicationService {
	return &ApplicationService{
		applicationRepo: cfg.ApplicationRepo,
		applicantRepo:   cfg.ApplicantRepo,
		shelterRepo:     cfg.ShelterRepo,
		engine:          NewMatchEngine(),
	}
}

// ApplyRequest represents an applicant applying to a shelter
type ApplyRequest struct {
	ApplicantID string
	ShelterID   string
	Note        *string
}

// Apply creates a pending application after verifying the applicant and
// shelter exist, the shelter is accepting applications, and no open
// application for the pair already exists. The match percentage at time of
// application is stamped on the record when the pair is eligible.
func (s *ApplicationService) Apply(ctx context.Context, req ApplyRequest) (*model.Application, error) {
	if req.Note != nil && len(*req.Note) > maxNoteLength {
		return nil, ErrNoteTooLong
	}

	applicant, err := s.applicantRepo.GetByID(ctx, req.ApplicantID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, ErrApplicantNotFound
	}

	shelter, err := s.shelterRepo.GetByID(ctx, req.ShelterID)
	if err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, ErrShelterNotFound
	}
	if !shelter.Active {
		return nil, ErrShelterInactive
	}

	existing, err := s.applicationRepo.GetByApplicantAndShelter(ctx, req.ApplicantID, req.ShelterID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.Status.IsTerminal() {
		return nil, ErrAlreadyApplied
	}

	application := &model.Application{
		ApplicantID: req.ApplicantID,
		ShelterID:   req.ShelterID,
		Status:      model.ApplicationPending,
		Note:        req.Note,
	}
	if result := s.engine.Evaluate(applicant, shelter); result != nil {
		application.PercentageMatch = &result.PercentageMatch
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// GetApplication retrieves an application by ID
func (s *ApplicationService) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}
	return application, nil
}

// ListByApplicant returns all applications submitted by one applicant
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	return s.applicationRepo.ListByApplicant(ctx, applicantID)
}

// ListByShelter returns all applications received by one shelter
func (s *ApplicationService) ListByShelter(ctx context.Context, shelterID string) ([]*model.Application, error) {
	return s.applicationRepo.ListByShelter(ctx, shelterID)
}

// UpdateStatusRequest represents a status change on an application
type UpdateStatusRequest struct {
	ApplicationID string
	Status        model.ApplicationStatus
	StaffNote     *string
	Actor         *model.TokenClaims
}

// UpdateStatus moves an application through its lifecycle. Staff decisions
// (reviewing, accepted, declined) require the actor to manage the shelter or
// hold the admin role; withdrawal carries no staff requirement.
func (s *ApplicationService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*model.Application, error) {
	if !req.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if req.StaffNote != nil && len(*req.StaffNote) > maxNoteLength {
		return nil, ErrNoteTooLong
	}

	application, err := s.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	if !application.Status.CanTransitionTo(req.Status) {
		return nil, ErrInvalidTransition
	}

	if req.Status != model.ApplicationWithdrawn {
		if req.Actor == nil || !s.actorManagesShelter(req.Actor, application.ShelterID) {
			return nil, ErrNotShelterStaff
		}
	}

	if err := s.applicationRepo.UpdateStatus(ctx, req.ApplicationID, req.Status, req.StaffNote); err != nil {
		return nil, err
	}

	application.Status = req.Status
	if req.StaffNote != nil {
		application.StaffNote = req.StaffNote
	}
	return application, nil
}

// RefreshMatchScores re-evaluates every open application against the current
// applicant and shelter profiles and rewrites scores that changed. Profiles
// get edited after an application is submitted; the stored score would
// otherwise go stale. Returns the number of applications updated.
func (s *ApplicationService) RefreshMatchScores(ctx context.Context) (int, error) {
	open, err := s.applicationRepo.ListOpen(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, application := range open {
		applicant, err := s.applicantRepo.GetByID(ctx, application.ApplicantID)
		if err != nil || applicant == nil {
			continue
		}
		shelter, err := s.shelterRepo.GetByID(ctx, application.ShelterID)
		if err != nil || shelter == nil {
			continue
		}

		var score *int
		if result := s.engine.Evaluate(applicant, shelter); result != nil {
			score = &result.PercentageMatch
		}
		if !matchScoreChanged(application.PercentageMatch, score) {
			continue
		}
		if err := s.applicationRepo.UpdateMatch(ctx, application.ID, score); err != nil {
			continue
		}
		updated++
	}
	return updated, nil
}

func matchScoreChanged(old, updated *int) bool {
	if (old == nil) != (updated == nil) {
		return true
	}
	return old != nil && *old != *updated
}

func (s *ApplicationService) actorManagesShelter(actor *model.TokenClaims, shelterID string) bool {
	if actor.Role == string(model.UserRoleAdmin) {
		return true
	}
	return actor.ShelterID != "" && strings.EqualFold(actor.ShelterID, shelterID)
}
