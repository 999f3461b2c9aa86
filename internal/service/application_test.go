package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

// ============================================================================
// Mocks
// ============================================================================

type mockApplicationRepo struct {
	createFunc                   func(ctx context.Context, application *model.Application) error
	getByIDFunc                  func(ctx context.Context, id string) (*model.Application, error)
	getByApplicantAndShelterFunc func(ctx context.Context, applicantID, shelterID string) (*model.Application, error)
	listByApplicantFunc          func(ctx context.Context, applicantID string) ([]*model.Application, error)
	listByShelterFunc            func(ctx context.Context, shelterID string) ([]*model.Application, error)
	updateStatusFunc             func(ctx context.Context, id string, status model.ApplicationStatus, staffNote *string) error
	listOpenFunc                 func(ctx context.Context) ([]*model.Application, error)
	updateMatchFunc              func(ctx context.Context, id string, percentageMatch *int) error
}

func (m *mockApplicationRepo) Create(ctx context.Context, application *model.Application) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, application)
	}
	return nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockApplicationRepo) GetByApplicantAndShelter(ctx context.Context, applicantID, shelterID string) (*model.Application, error) {
	if m.getByApplicantAndShelterFunc != nil {
		return m.getByApplicantAndShelterFunc(ctx, applicantID, shelterID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	if m.listByApplicantFunc != nil {
		return m.listByApplicantFunc(ctx, applicantID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListByShelter(ctx context.Context, shelterID string) ([]*model.Application, error) {
	if m.listByShelterFunc != nil {
		return m.listByShelterFunc(ctx, shelterID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, staffNote *string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, staffNote)
	}
	return nil
}

func (m *mockApplicationRepo) ListOpen(ctx context.Context) ([]*model.Application, error) {
	if m.listOpenFunc != nil {
		return m.listOpenFunc(ctx)
	}
	return nil, nil
}

func (m *mockApplicationRepo) UpdateMatch(ctx context.Context, id string, percentageMatch *int) error {
	if m.updateMatchFunc != nil {
		return m.updateMatchFunc(ctx, id, percentageMatch)
	}
	return nil
}

type mockShelterRepository struct {
	createFunc     func(ctx context.Context, shelter *model.Shelter) error
	getByIDFunc    func(ctx context.Context, id string) (*model.Shelter, error)
	updateFunc     func(ctx context.Context, shelter *model.Shelter) error
	deleteFunc     func(ctx context.Context, id string) error
	listActiveFunc func(ctx context.Context) ([]*model.Shelter, error)
}

func (m *mockShelterRepository) Create(ctx context.Context, shelter *model.Shelter) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, shelter)
	}
	return nil
}

func (m *mockShelterRepository) GetByID(ctx context.Context, id string) (*model.Shelter, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockShelterRepository) Update(ctx context.Context, shelter *model.Shelter) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, shelter)
	}
	return nil
}

func (m *mockShelterRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockShelterRepository) ListActive(ctx context.Context) ([]*model.Shelter, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return nil, nil
}

func newApplicationService(apps *mockApplicationRepo, applicants *mockApplicantRepo, shelters *mockShelterRepository) *ApplicationService {
	return NewApplicationService(ApplicationServiceConfig{
		ApplicationRepo: apps,
		ApplicantRepo:   applicants,
		ShelterRepo:     shelters,
	})
}

func activeShelterRepo(shelter *model.Shelter) *mockShelterRepository {
	return &mockShelterRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.Shelter, error) {
			return shelter, nil
		},
	}
}

func knownApplicantRepo(applicant *model.Applicant) *mockApplicantRepo {
	return &mockApplicantRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Applicant, error) {
			return applicant, nil
		},
	}
}

// ============================================================================
// Apply Tests
// ============================================================================

func TestApply_CreatesPendingApplicationWithMatchScore(t *testing.T) {
	t.Parallel()

	var created *model.Application
	apps := &mockApplicationRepo{
		createFunc: func(ctx context.Context, application *model.Application) error {
			created = application
			return nil
		},
	}
	svc := newApplicationService(apps, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(eligibleShelter()))

	result, err := svc.Apply(context.Background(), ApplyRequest{
		ApplicantID: "applicant:1",
		ShelterID:   "shelter:1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.ApplicationPending {
		t.Errorf("expected pending status, got %s", result.Status)
	}
	if created == nil {
		t.Fatal("expected application to be persisted")
	}
	if created.PercentageMatch == nil || *created.PercentageMatch != 84 {
		t.Errorf("expected match score 84 stamped on the application, got %v", created.PercentageMatch)
	}
}

func TestApply_IneligiblePair_CreatesWithoutScore(t *testing.T) {
	t.Parallel()

	shelter := eligibleShelter()
	shelter.Location = "Manchester, UK"

	var created *model.Application
	apps := &mockApplicationRepo{
		createFunc: func(ctx context.Context, application *model.Application) error {
			created = application
			return nil
		},
	}
	svc := newApplicationService(apps, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(shelter))

	if _, err := svc.Apply(context.Background(), ApplyRequest{ApplicantID: "applicant:1", ShelterID: "shelter:1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PercentageMatch != nil {
		t.Errorf("expected no match score for ineligible pair, got %v", *created.PercentageMatch)
	}
}

func TestApply_UnknownShelter_ReturnsError(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(&mockApplicationRepo{}, knownApplicantRepo(eligibleApplicant()), &mockShelterRepository{})

	_, err := svc.Apply(context.Background(), ApplyRequest{ApplicantID: "applicant:1", ShelterID: "shelter:missing"})
	if !errors.Is(err, ErrShelterNotFound) {
		t.Errorf("expected ErrShelterNotFound, got %v", err)
	}
}

func TestApply_InactiveShelter_ReturnsError(t *testing.T) {
	t.Parallel()

	shelter := eligibleShelter()
	shelter.Active = false
	svc := newApplicationService(&mockApplicationRepo{}, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(shelter))

	_, err := svc.Apply(context.Background(), ApplyRequest{ApplicantID: "applicant:1", ShelterID: "shelter:1"})
	if !errors.Is(err, ErrShelterInactive) {
		t.Errorf("expected ErrShelterInactive, got %v", err)
	}
}

func TestApply_OpenDuplicate_ReturnsError(t *testing.T) {
	t.Parallel()

	apps := &mockApplicationRepo{
		getByApplicantAndShelterFunc: func(ctx context.Context, applicantID, shelterID string) (*model.Application, error) {
			return &model.Application{Status: model.ApplicationPending}, nil
		},
	}
	svc := newApplicationService(apps, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(eligibleShelter()))

	_, err := svc.Apply(context.Background(), ApplyRequest{ApplicantID: "applicant:1", ShelterID: "shelter:1"})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApply_ClosedDuplicate_Allowed(t *testing.T) {
	t.Parallel()

	apps := &mockApplicationRepo{
		getByApplicantAndShelterFunc: func(ctx context.Context, applicantID, shelterID string) (*model.Application, error) {
			return &model.Application{Status: model.ApplicationDeclined}, nil
		},
	}
	svc := newApplicationService(apps, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(eligibleShelter()))

	if _, err := svc.Apply(context.Background(), ApplyRequest{ApplicantID: "applicant:1", ShelterID: "shelter:1"}); err != nil {
		t.Errorf("expected re-application after a declined one to succeed, got %v", err)
	}
}

func TestApply_NoteTooLong_ReturnsError(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(&mockApplicationRepo{}, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(eligibleShelter()))

	note := strings.Repeat("a", maxNoteLength+1)
	_, err := svc.Apply(context.Background(), ApplyRequest{ApplicantID: "applicant:1", ShelterID: "shelter:1", Note: &note})
	if !errors.Is(err, ErrNoteTooLong) {
		t.Errorf("expected ErrNoteTooLong, got %v", err)
	}
}

// ============================================================================
// UpdateStatus Tests
// ============================================================================

func staffClaims(shelterID string) *model.TokenClaims {
	return &model.TokenClaims{
		UserID:    "user:1",
		Email:     "staff@example.org",
		Role:      string(model.UserRoleStaff),
		ShelterID: shelterID,
	}
}

func pendingApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Application, error) {
			return &model.Application{
				ID:          "application:1",
				ApplicantID: "applicant:1",
				ShelterID:   "shelter:1",
				Status:      model.ApplicationPending,
			}, nil
		},
	}
}

func TestUpdateStatus_StaffMovesToReviewing(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(pendingApplicationRepo(), &mockApplicantRepo{}, &mockShelterRepository{})

	result, err := svc.UpdateStatus(context.Background(), UpdateStatusRequest{
		ApplicationID: "application:1",
		Status:        model.ApplicationReviewing,
		Actor:         staffClaims("shelter:1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != model.ApplicationReviewing {
		t.Errorf("expected reviewing, got %s", result.Status)
	}
}

func TestUpdateStatus_StaffOfOtherShelter_Forbidden(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(pendingApplicationRepo(), &mockApplicantRepo{}, &mockShelterRepository{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusRequest{
		ApplicationID: "application:1",
		Status:        model.ApplicationAccepted,
		Actor:         staffClaims("shelter:other"),
	})
	if !errors.Is(err, ErrNotShelterStaff) {
		t.Errorf("expected ErrNotShelterStaff, got %v", err)
	}
}

func TestUpdateStatus_AdminMayActForAnyShelter(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(pendingApplicationRepo(), &mockApplicantRepo{}, &mockShelterRepository{})

	admin := &model.TokenClaims{UserID: "user:2", Role: string(model.UserRoleAdmin)}
	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusRequest{
		ApplicationID: "application:1",
		Status:        model.ApplicationDeclined,
		Actor:         admin,
	}); err != nil {
		t.Errorf("expected admin to act for any shelter, got %v", err)
	}
}

func TestUpdateStatus_WithdrawNeedsNoStaffRole(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(pendingApplicationRepo(), &mockApplicantRepo{}, &mockShelterRepository{})

	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusRequest{
		ApplicationID: "application:1",
		Status:        model.ApplicationWithdrawn,
	}); err != nil {
		t.Errorf("expected withdrawal without an actor to succeed, got %v", err)
	}
}

func TestUpdateStatus_TerminalState_RejectsFurtherMoves(t *testing.T) {
	t.Parallel()

	apps := &mockApplicationRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Application, error) {
			return &model.Application{ID: id, ShelterID: "shelter:1", Status: model.ApplicationAccepted}, nil
		},
	}
	svc := newApplicationService(apps, &mockApplicantRepo{}, &mockShelterRepository{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusRequest{
		ApplicationID: "application:1",
		Status:        model.ApplicationDeclined,
		Actor:         staffClaims("shelter:1"),
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_UnknownStatus_Rejected(t *testing.T) {
	t.Parallel()

	svc := newApplicationService(pendingApplicationRepo(), &mockApplicantRepo{}, &mockShelterRepository{})

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusRequest{
		ApplicationID: "application:1",
		Status:        model.ApplicationStatus("archived"),
		Actor:         staffClaims("shelter:1"),
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

// ============================================================================
// Score Refresh Tests
// ============================================================================

func openApplicationsRepo(applications []*model.Application, updateMatch func(ctx context.Context, id string, percentageMatch *int) error) *mockApplicationRepo {
	return &mockApplicationRepo{
		listOpenFunc: func(ctx context.Context) ([]*model.Application, error) {
			return applications, nil
		},
		updateMatchFunc: updateMatch,
	}
}

func TestRefreshMatchScores_ClearsScoreWhenPairBecomesIneligible(t *testing.T) {
	t.Parallel()

	score := 84
	var captured *int
	calls := 0
	apps := openApplicationsRepo([]*model.Application{
		{ID: "application:1", ApplicantID: "applicant:1", ShelterID: "shelter:1", Status: model.ApplicationPending, PercentageMatch: &score},
	}, func(ctx context.Context, id string, percentageMatch *int) error {
		calls++
		captured = percentageMatch
		return nil
	})

	applicant := eligibleApplicant()
	applicant.Location = "Manchester, UK" // moved out of range after applying
	svc := newApplicationService(apps, knownApplicantRepo(applicant), activeShelterRepo(eligibleShelter()))

	updated, err := svc.RefreshMatchScores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 updated application, got %d", updated)
	}
	if calls != 1 {
		t.Fatalf("expected one UpdateMatch call, got %d", calls)
	}
	if captured != nil {
		t.Errorf("expected score cleared to nil, got %d", *captured)
	}
}

func TestRefreshMatchScores_UnchangedScore_NoWrite(t *testing.T) {
	t.Parallel()

	score := 84
	calls := 0
	apps := openApplicationsRepo([]*model.Application{
		{ID: "application:1", ApplicantID: "applicant:1", ShelterID: "shelter:1", Status: model.ApplicationPending, PercentageMatch: &score},
	}, func(ctx context.Context, id string, percentageMatch *int) error {
		calls++
		return nil
	})

	svc := newApplicationService(apps, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(eligibleShelter()))

	updated, err := svc.RefreshMatchScores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected no updates, got %d", updated)
	}
	if calls != 0 {
		t.Errorf("expected no UpdateMatch calls, got %d", calls)
	}
}

func TestRefreshMatchScores_StampsScoreWhenPairBecomesEligible(t *testing.T) {
	t.Parallel()

	var captured *int
	apps := openApplicationsRepo([]*model.Application{
		{ID: "application:1", ApplicantID: "applicant:1", ShelterID: "shelter:1", Status: model.ApplicationReviewing},
	}, func(ctx context.Context, id string, percentageMatch *int) error {
		captured = percentageMatch
		return nil
	})

	svc := newApplicationService(apps, knownApplicantRepo(eligibleApplicant()), activeShelterRepo(eligibleShelter()))

	updated, err := svc.RefreshMatchScores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 updated application, got %d", updated)
	}
	if captured == nil || *captured != 84 {
		t.Errorf("expected score 84, got %v", captured)
	}
}
