package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hsrehman/SafeHaven-sub000/internal/middleware"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
	"github.com/Hsrehman/SafeHaven-sub000/pkg/jwt"
)

// ============================================================================
// In-Memory Application Repo
// ============================================================================

type fakeApplicationRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*model.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{records: make(map[string]*model.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, application *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	application.ID = "application:" + strconv.Itoa(r.seq)
	application.CreatedOn = time.Now()
	application.UpdatedOn = application.CreatedOn
	copied := *application
	r.records[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	copied := *application
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByApplicantAndShelter(ctx context.Context, applicantID, shelterID string) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *model.Application
	for _, a := range r.records {
		if a.ApplicantID == applicantID && a.ShelterID == shelterID {
			if latest == nil || a.CreatedOn.After(latest.CreatedOn) {
				latest = a
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Application
	for _, a := range r.records {
		if a.ApplicantID == applicantID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByShelter(ctx context.Context, shelterID string) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Application
	for _, a := range r.records {
		if a.ShelterID == shelterID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, staffNote *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.records[id]
	if !ok {
		return nil
	}
	application.Status = status
	if staffNote != nil {
		application.StaffNote = staffNote
	}
	application.UpdatedOn = time.Now()
	return nil
}

func (r *fakeApplicationRepo) ListOpen(ctx context.Context) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Application
	for _, a := range r.records {
		if !a.Status.IsTerminal() {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateMatch(ctx context.Context, id string, percentageMatch *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if application, ok := r.records[id]; ok {
		application.PercentageMatch = percentageMatch
	}
	return nil
}

// ============================================================================
// Test Helpers
// ============================================================================

type applicationAPI struct {
	mux          *http.ServeMux
	applicants   *fakeApplicantRepo
	shelters     *fakeShelterRepo
	applications *fakeApplicationRepo
}

func newApplicationAPI() *applicationAPI {
	applicants := newFakeApplicantRepo()
	shelters := newFakeShelterRepo()
	applications := newFakeApplicationRepo()

	applicationService := service.NewApplicationService(service.ApplicationServiceConfig{
		ApplicationRepo: applications,
		ApplicantRepo:   applicants,
		ShelterRepo:     shelters,
	})
	applicationHandler := NewApplicationHandler(applicationService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/applications", applicationHandler.Create)
	mux.HandleFunc("GET /v1/applications/{applicationId}", applicationHandler.Get)
	mux.HandleFunc("GET /v1/applicants/{applicantId}/applications", applicationHandler.ListByApplicant)
	mux.HandleFunc("GET /v1/shelters/{shelterId}/applications", applicationHandler.ListByShelter)
	mux.HandleFunc("PATCH /v1/applications/{applicationId}/status", applicationHandler.UpdateStatus)

	return &applicationAPI{
		mux:          mux,
		applicants:   applicants,
		shelters:     shelters,
		applications: applications,
	}
}

// do sends a request, optionally authenticated as the given claims.
func (api *applicationAPI) do(t *testing.T, method, path string, body interface{}, claims *jwt.Claims) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, middleware.ClaimsKey, claims)
		req = req.WithContext(ctx)
	}
	rr := httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	return rr
}

func (api *applicationAPI) seedPair(t *testing.T) (applicantID, shelterID string) {
	t.Helper()
	applicant := londonApplicant()
	require.NoError(t, api.applicants.Create(context.Background(), applicant))
	shelter := londonShelter("Hope House")
	require.NoError(t, api.shelters.Create(context.Background(), shelter))
	return applicant.ID, shelter.ID
}

func (api *applicationAPI) seedApplication(t *testing.T, applicantID, shelterID string, status model.ApplicationStatus) string {
	t.Helper()
	application := &model.Application{
		ApplicantID: applicantID,
		ShelterID:   shelterID,
		Status:      status,
	}
	require.NoError(t, api.applications.Create(context.Background(), application))
	return application.ID
}

func staffOf(shelterID string) *jwt.Claims {
	return &jwt.Claims{
		UserID:    "user:staff",
		Email:     "staff@example.com",
		Role:      "staff",
		ShelterID: shelterID,
	}
}

// ============================================================================
// Apply Tests
// ============================================================================

func TestApplicationCreate_StampsMatchScore(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"applicant_id": applicantID,
		"shelter_id":   shelterID,
	}, nil)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	data := decodeData(t, rr)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(84), data["percentage_match"])
}

func TestApplicationCreate_IneligiblePair_NoScore(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, _ := api.seedPair(t)
	far := londonShelter("Northern Refuge")
	far.Location = "Manchester, UK"
	require.NoError(t, api.shelters.Create(context.Background(), far))

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"applicant_id": applicantID,
		"shelter_id":   far.ID,
	}, nil)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	data := decodeData(t, rr)
	_, scored := data["percentage_match"]
	assert.False(t, scored, "ineligible pairs carry no score")
}

func TestApplicationCreate_MissingIDs_ReturnsValidationError(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"shelter_id": "shelter:1",
	}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApplicationCreate_UnknownShelter_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicant := londonApplicant()
	require.NoError(t, api.applicants.Create(context.Background(), applicant))

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"applicant_id": applicant.ID,
		"shelter_id":   "shelter:missing",
	}, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApplicationCreate_InactiveShelter_ReturnsValidationError(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	shelter, err := api.shelters.GetByID(context.Background(), shelterID)
	require.NoError(t, err)
	shelter.Active = false
	require.NoError(t, api.shelters.Update(context.Background(), shelter))

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"applicant_id": applicantID,
		"shelter_id":   shelterID,
	}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApplicationCreate_OpenDuplicate_ReturnsConflict(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"applicant_id": applicantID,
		"shelter_id":   shelterID,
	}, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestApplicationCreate_AfterDecline_Allowed(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	api.seedApplication(t, applicantID, shelterID, model.ApplicationDeclined)

	rr := api.do(t, http.MethodPost, "/v1/applications", map[string]interface{}{
		"applicant_id": applicantID,
		"shelter_id":   shelterID,
	}, nil)

	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

// ============================================================================
// Listing Tests
// ============================================================================

func TestApplicationListByShelter_ReturnsApplications(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	rr := api.do(t, http.MethodGet, "/v1/shelters/"+shelterID+"/applications", nil, staffOf(shelterID))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp CollectionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
}

// ============================================================================
// Status Update Tests
// ============================================================================

func TestApplicationStatus_ShelterStaff_CanReview(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	applicationID := api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	rr := api.do(t, http.MethodPatch, "/v1/applications/"+applicationID+"/status", map[string]interface{}{
		"status":     "reviewing",
		"staff_note": "Interview booked for Tuesday",
	}, staffOf(shelterID))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := decodeData(t, rr)
	assert.Equal(t, "reviewing", data["status"])

	stored, err := api.applications.GetByID(context.Background(), applicationID)
	require.NoError(t, err)
	require.NotNil(t, stored.StaffNote)
	assert.Equal(t, "Interview booked for Tuesday", *stored.StaffNote)
}

func TestApplicationStatus_OtherShelterStaff_Forbidden(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	applicationID := api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	rr := api.do(t, http.MethodPatch, "/v1/applications/"+applicationID+"/status", map[string]interface{}{
		"status": "accepted",
	}, staffOf("shelter:other"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestApplicationStatus_Admin_AnyShelter(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	applicationID := api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	admin := &jwt.Claims{UserID: "user:admin", Role: "admin"}
	rr := api.do(t, http.MethodPatch, "/v1/applications/"+applicationID+"/status", map[string]interface{}{
		"status": "accepted",
	}, admin)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestApplicationStatus_Withdraw_NeedsNoActor(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	applicationID := api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	rr := api.do(t, http.MethodPatch, "/v1/applications/"+applicationID+"/status", map[string]interface{}{
		"status": "withdrawn",
	}, nil)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestApplicationStatus_TerminalState_Rejected(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	applicationID := api.seedApplication(t, applicantID, shelterID, model.ApplicationDeclined)

	rr := api.do(t, http.MethodPatch, "/v1/applications/"+applicationID+"/status", map[string]interface{}{
		"status": "accepted",
	}, staffOf(shelterID))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApplicationStatus_UnknownStatus_Rejected(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()
	applicantID, shelterID := api.seedPair(t)
	applicationID := api.seedApplication(t, applicantID, shelterID, model.ApplicationPending)

	rr := api.do(t, http.MethodPatch, "/v1/applications/"+applicationID+"/status", map[string]interface{}{
		"status": "archived",
	}, staffOf(shelterID))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApplicationGet_Unknown_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	api := newApplicationAPI()

	rr := api.do(t, http.MethodGet, "/v1/applications/application:missing", nil, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
