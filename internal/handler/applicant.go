package handler

import (
	"net/http"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// ApplicantHandler handles intake record endpoints
type ApplicantHandler struct {
	applicantService *service.ApplicantService
	matchService     *service.MatchService
}

// NewApplicantHandler creates a new applicant handler
func NewApplicantHandler(applicantService *service.ApplicantService, matchService *service.MatchService) *ApplicantHandler {
	return &ApplicantHandler{
		applicantService: applicantService,
		matchService:     matchService,
	}
}

// CoordinatesPayload is a geographic point in request bodies
type CoordinatesPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ApplicantRequest represents the intake form submission. The form sends
// free-text answers ("Emergency (tonight)", "Myself and my family", "Yes");
// they are converted to the closed enum types here at the boundary.
type ApplicantRequest struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`

	DOB    *string `json:"dob,omitempty"`
	Gender string  `json:"gender,omitempty"`

	Location    string              `json:"location,omitempty"`
	Coordinates *CoordinatesPayload `json:"location_coordinates,omitempty"`

	ShelterType   string `json:"shelter_type,omitempty"`
	GroupType     string `json:"group_type,omitempty"`
	GroupSize     string `json:"group_size,omitempty"`
	ChildrenCount *int   `json:"children_count,omitempty"`
	Pets          string `json:"pets,omitempty"`

	WomenOnly         string `json:"women_only,omitempty"`
	Wheelchair        string `json:"wheelchair,omitempty"`
	LGBTQFriendly     string `json:"lgbtq_friendly,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`
	MentalHealth      string `json:"mental_health,omitempty"`
	SubstanceUse      string `json:"substance_use,omitempty"`
	DomesticAbuse     string `json:"domestic_abuse,omitempty"`
	FoodAssistance    string `json:"food_assistance,omitempty"`
	BenefitsHelp      string `json:"benefits_help,omitempty"`
	CareLeaver        string `json:"care_leaver,omitempty"`
	Veteran           string `json:"veteran,omitempty"`

	ImmigrationStatus string   `json:"immigration_status,omitempty"`
	Religion          *string  `json:"religion,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	LocalConnection   []string `json:"local_connection,omitempty"`
}

// Create handles POST /v1/applicants
func (h *ApplicantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ApplicantRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	applicant, err := h.applicantService.CreateApplicant(r.Context(), toApplicantModel(&req))
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create applicant"))
		return
	}

	WriteData(w, http.StatusCreated, applicant, map[string]string{
		"self":    "/v1/applicants/" + applicant.ID,
		"matches": "/v1/applicants/" + applicant.ID + "/matches",
	})
}

// Get handles GET /v1/applicants/{applicantId}
func (h *ApplicantHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantId")

	applicant, err := h.applicantService.GetApplicant(r.Context(), applicantID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get applicant"))
		return
	}

	WriteData(w, http.StatusOK, applicant, map[string]string{
		"self":    "/v1/applicants/" + applicant.ID,
		"matches": "/v1/applicants/" + applicant.ID + "/matches",
	})
}

// Update handles PATCH /v1/applicants/{applicantId}
func (h *ApplicantHandler) Update(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantId")

	var req ApplicantRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	updated := toApplicantModel(&req)
	updated.ID = applicantID

	applicant, err := h.applicantService.UpdateApplicant(r.Context(), updated)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update applicant"))
		return
	}

	WriteData(w, http.StatusOK, applicant, map[string]string{
		"self": "/v1/applicants/" + applicant.ID,
	})
}

// List handles GET /v1/applicants
func (h *ApplicantHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	applicants, err := h.applicantService.ListApplicants(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list applicants"))
		return
	}

	WriteCollection(w, http.StatusOK, applicants, len(applicants), nil)
}

// Matches handles GET /v1/applicants/{applicantId}/matches
func (h *ApplicantHandler) Matches(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantId")

	results, err := h.matchService.MatchShelters(r.Context(), applicantID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "match shelters"))
		return
	}

	WriteCollection(w, http.StatusOK, results, len(results), map[string]string{
		"applicant": "/v1/applicants/" + applicantID,
	})
}

func toApplicantModel(req *ApplicantRequest) *model.Applicant {
	applicant := &model.Applicant{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		DOB:               req.DOB,
		Gender:            model.ParseGender(req.Gender),
		Location:          req.Location,
		ShelterType:       model.ParseStayCategory(req.ShelterType),
		GroupType:         model.ParseGroupType(req.GroupType),
		GroupSize:         req.GroupSize,
		ChildrenCount:     req.ChildrenCount,
		Pets:              model.ParseYesNo(req.Pets),
		WomenOnly:         model.ParseYesNo(req.WomenOnly),
		Wheelchair:        model.ParseYesNo(req.Wheelchair),
		LGBTQFriendly:     model.ParseYesNo(req.LGBTQFriendly),
		MedicalConditions: model.ParseYesNo(req.MedicalConditions),
		MentalHealth:      model.ParseYesNo(req.MentalHealth),
		SubstanceUse:      model.ParseYesNo(req.SubstanceUse),
		DomesticAbuse:     model.ParseYesNo(req.DomesticAbuse),
		FoodAssistance:    model.ParseYesNo(req.FoodAssistance),
		BenefitsHelp:      model.ParseYesNo(req.BenefitsHelp),
		CareLeaver:        model.ParseYesNo(req.CareLeaver),
		Veteran:           model.ParseYesNo(req.Veteran),
		ImmigrationStatus: req.ImmigrationStatus,
		Religion:          req.Religion,
		Benefits:          req.Benefits,
		LocalConnection:   req.LocalConnection,
	}
	if req.Coordinates != nil {
		applicant.Coordinates = &model.Coordinates{
			Lat: req.Coordinates.Lat,
			Lng: req.Coordinates.Lng,
		}
	}
	return applicant
}
