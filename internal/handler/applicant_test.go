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

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// ============================================================================
// In-Memory Fakes
// ============================================================================

type fakeApplicantRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*model.Applicant
}

func newFakeApplicantRepo() *fakeApplicantRepo {
	return &fakeApplicantRepo{records: make(map[string]*model.Applicant)}
}

func (r *fakeApplicantRepo) Create(ctx context.Context, applicant *model.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	applicant.ID = "applicant:" + strconv.Itoa(r.seq)
	applicant.CreatedOn = time.Now()
	applicant.UpdatedOn = applicant.CreatedOn
	copied := *applicant
	r.records[applicant.ID] = &copied
	return nil
}

func (r *fakeApplicantRepo) GetByID(ctx context.Context, id string) (*model.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	applicant, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	copied := *applicant
	return &copied, nil
}

func (r *fakeApplicantRepo) Update(ctx context.Context, applicant *model.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	applicant.UpdatedOn = time.Now()
	copied := *applicant
	r.records[applicant.ID] = &copied
	return nil
}

func (r *fakeApplicantRepo) List(ctx context.Context, limit, offset int) ([]*model.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Applicant
	for _, a := range r.records {
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

type fakeShelterRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*model.Shelter
}

func newFakeShelterRepo() *fakeShelterRepo {
	return &fakeShelterRepo{records: make(map[string]*model.Shelter)}
}

func (r *fakeShelterRepo) Create(ctx context.Context, shelter *model.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	shelter.ID = "shelter:" + strconv.Itoa(r.seq)
	shelter.CreatedOn = time.Now()
	shelter.UpdatedOn = shelter.CreatedOn
	copied := *shelter
	r.records[shelter.ID] = &copied
	return nil
}

func (r *fakeShelterRepo) GetByID(ctx context.Context, id string) (*model.Shelter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shelter, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	copied := *shelter
	return &copied, nil
}

func (r *fakeShelterRepo) Update(ctx context.Context, shelter *model.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shelter.UpdatedOn = time.Now()
	copied := *shelter
	r.records[shelter.ID] = &copied
	return nil
}

func (r *fakeShelterRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

func (r *fakeShelterRepo) ListActive(ctx context.Context) ([]*model.Shelter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Shelter
	for _, s := range r.records {
		if s.Active {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

type testAPI struct {
	mux        *http.ServeMux
	applicants *fakeApplicantRepo
	shelters   *fakeShelterRepo
}

func newTestAPI() *testAPI {
	applicants := newFakeApplicantRepo()
	shelters := newFakeShelterRepo()

	applicantService := service.NewApplicantService(service.ApplicantServiceConfig{
		ApplicantRepo: applicants,
	})
	shelterService := service.NewShelterService(service.ShelterServiceConfig{
		ShelterRepo: shelters,
	})
	matchService := service.NewMatchService(service.MatchServiceConfig{
		ApplicantRepo: applicants,
		ShelterRepo:   shelters,
	})

	applicantHandler := NewApplicantHandler(applicantService, matchService)
	shelterHandler := NewShelterHandler(shelterService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/applicants", applicantHandler.Create)
	mux.HandleFunc("GET /v1/applicants", applicantHandler.List)
	mux.HandleFunc("GET /v1/applicants/{applicantId}", applicantHandler.Get)
	mux.HandleFunc("PATCH /v1/applicants/{applicantId}", applicantHandler.Update)
	mux.HandleFunc("GET /v1/applicants/{applicantId}/matches", applicantHandler.Matches)
	mux.HandleFunc("POST /v1/shelters", shelterHandler.Create)
	mux.HandleFunc("GET /v1/shelters", shelterHandler.List)
	mux.HandleFunc("GET /v1/shelters/nearby", shelterHandler.Nearby)
	mux.HandleFunc("GET /v1/shelters/{shelterId}", shelterHandler.Get)

	return &testAPI{mux: mux, applicants: applicants, shelters: shelters}
}

func (api *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp DataResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected data to be an object")
	return data
}

func seedApplicant(t *testing.T, api *testAPI, applicant *model.Applicant) string {
	t.Helper()
	require.NoError(t, api.applicants.Create(context.Background(), applicant))
	return applicant.ID
}

func seedShelter(t *testing.T, api *testAPI, shelter *model.Shelter) string {
	t.Helper()
	require.NoError(t, api.shelters.Create(context.Background(), shelter))
	return shelter.ID
}

func londonApplicant() *model.Applicant {
	return &model.Applicant{
		FullName:    "Jordan Smith",
		Location:    "London, UK",
		ShelterType: model.StayEmergency,
		GroupType:   model.GroupTypeAlone,
		Pets:        model.YesNoNo,
	}
}

func londonShelter(name string) *model.Shelter {
	maxStay := "Up to 7 nights"
	return &model.Shelter{
		ShelterName:   name,
		Location:      "London, UK",
		GenderPolicy:  model.GenderPolicyAllGenders,
		MaxStayLength: &maxStay,
		Active:        true,
	}
}

// ============================================================================
// Applicant Endpoint Tests
// ============================================================================

func TestApplicantCreate_ConvertsIntakeAnswers(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodPost, "/v1/applicants", map[string]interface{}{
		"full_name":    "Sam Carter",
		"location":     "Hackney, London",
		"gender":       "Male",
		"shelter_type": "Emergency (tonight)",
		"group_type":   "Myself and my family",
		"pets":         "Yes",
		"women_only":   "No",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	data := decodeData(t, rr)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)

	stored, err := api.applicants.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.GenderMale, stored.Gender)
	assert.Equal(t, model.StayEmergency, stored.ShelterType)
	assert.Equal(t, model.GroupTypeFamily, stored.GroupType)
	assert.Equal(t, model.YesNoYes, stored.Pets)
	assert.Equal(t, model.YesNoNo, stored.WomenOnly)
}

func TestApplicantCreate_MissingName_ReturnsValidationError(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodPost, "/v1/applicants", map[string]interface{}{
		"location": "London, UK",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApplicantCreate_NoLocationSignal_ReturnsValidationError(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodPost, "/v1/applicants", map[string]interface{}{
		"full_name": "Sam Carter",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApplicantGet_Unknown_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodGet, "/v1/applicants/applicant:missing", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApplicantUpdate_ChangesLocation(t *testing.T) {
	t.Parallel()
	api := newTestAPI()
	id := seedApplicant(t, api, londonApplicant())

	rr := api.do(t, http.MethodPatch, "/v1/applicants/"+id, map[string]interface{}{
		"full_name": "Jordan Smith",
		"location":  "Manchester, UK",
	})

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	stored, err := api.applicants.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Manchester, UK", stored.Location)
}

func TestApplicantList_ReturnsCount(t *testing.T) {
	t.Parallel()
	api := newTestAPI()
	seedApplicant(t, api, londonApplicant())
	second := londonApplicant()
	second.FullName = "Alex Doe"
	seedApplicant(t, api, second)

	rr := api.do(t, http.MethodGet, "/v1/applicants", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp CollectionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
}

// ============================================================================
// Match Endpoint Tests
// ============================================================================

func TestApplicantMatches_FiltersIneligibleShelters(t *testing.T) {
	t.Parallel()
	api := newTestAPI()
	applicantID := seedApplicant(t, api, londonApplicant())
	seedShelter(t, api, londonShelter("Hope House"))
	far := londonShelter("Northern Refuge")
	far.Location = "Manchester, UK"
	seedShelter(t, api, far)

	rr := api.do(t, http.MethodGet, "/v1/applicants/"+applicantID+"/matches", nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp CollectionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 1, resp.Count)

	results, ok := resp.Data.([]interface{})
	require.True(t, ok)
	first, ok := results[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Hope House", first["shelter_name"])
	assert.Equal(t, float64(84), first["percentage_match"])
}

func TestApplicantMatches_RanksByScore(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	applicant := londonApplicant()
	applicant.Wheelchair = model.YesNoYes
	applicantID := seedApplicant(t, api, applicant)

	seedShelter(t, api, londonShelter("Plain Shelter"))
	equipped := londonShelter("Accessible House")
	equipped.AccessibilityFeatures = []string{"Wheelchair accessible"}
	seedShelter(t, api, equipped)

	rr := api.do(t, http.MethodGet, "/v1/applicants/"+applicantID+"/matches", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp CollectionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 2, resp.Count)

	results, ok := resp.Data.([]interface{})
	require.True(t, ok)
	first, _ := results[0].(map[string]interface{})
	assert.Equal(t, "Accessible House", first["shelter_name"])
}

func TestApplicantMatches_UnknownApplicant_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodGet, "/v1/applicants/applicant:missing/matches", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ============================================================================
// Shelter Endpoint Tests
// ============================================================================

func TestShelterCreate_ConvertsPolicyText(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodPost, "/v1/shelters", map[string]interface{}{
		"shelter_name":   "Hope House",
		"location":       "London, UK",
		"gender_policy":  "Women only shelter",
		"pet_policy":     "No pets allowed",
		"lgbtq_friendly": "Yes",
	})

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	data := decodeData(t, rr)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)

	stored, err := api.shelters.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.GenderPolicyWomenOnly, stored.GenderPolicy)
	assert.Equal(t, model.PetPolicyNoPets, stored.PetPolicy)
	assert.Equal(t, model.YesNoYes, stored.LGBTQFriendly)
	assert.True(t, stored.Active, "new shelters accept applications")
}

func TestShelterCreate_MissingName_ReturnsValidationError(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodPost, "/v1/shelters", map[string]interface{}{
		"location": "London, UK",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestShelterGet_Unknown_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodGet, "/v1/shelters/shelter:missing", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestShelterNearby_OrdersByDistance(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	central := londonShelter("Central House")
	central.Coordinates = &model.Coordinates{Lat: 51.5074, Lng: -0.1278}
	seedShelter(t, api, central)

	outer := londonShelter("Outer House")
	outer.Coordinates = &model.Coordinates{Lat: 51.55, Lng: -0.2}
	seedShelter(t, api, outer)

	// No coordinates, should be excluded from distance search
	seedShelter(t, api, londonShelter("Unmapped House"))

	rr := api.do(t, http.MethodGet, "/v1/shelters/nearby?lat=51.5074&lng=-0.1278&radius_km=25", nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp CollectionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 2, resp.Count)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	first, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Central House", first["shelter_name"])
}

func TestShelterNearby_InvalidLatitude_ReturnsValidationError(t *testing.T) {
	t.Parallel()
	api := newTestAPI()

	rr := api.do(t, http.MethodGet, "/v1/shelters/nearby?lat=not-a-number&lng=-0.1278", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
