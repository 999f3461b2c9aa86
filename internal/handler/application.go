package handler

import (
	"net/http"

	"github.com/Hsrehman/SafeHaven-sub000/internal/middleware"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// ApplicationHandler handles apply-to-shelter endpoints
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// ApplyRequest represents the apply endpoint request body
type ApplyRequest struct {
	ApplicantID string  `json:"applicant_id"`
	ShelterID   string  `json:"shelter_id"`
	Note        *string `json:"note,omitempty"`
}

// UpdateStatusRequest represents the status endpoint request body
type UpdateStatusRequest struct {
	Status    string  `json:"status"`
	StaffNote *string `json:"staff_note,omitempty"`
}

// Create handles POST /v1/applications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if req.ApplicantID == "" || req.ShelterID == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "applicant_id", Message: "applicant_id and shelter_id are required"},
		}))
		return
	}

	application, err := h.applicationService.Apply(r.Context(), service.ApplyRequest{
		ApplicantID: req.ApplicantID,
		ShelterID:   req.ShelterID,
		Note:        req.Note,
	})
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create application"))
		return
	}

	WriteData(w, http.StatusCreated, application, map[string]string{
		"self": "/v1/applications/" + application.ID,
	})
}

// Get handles GET /v1/applications/{applicationId}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("applicationId")

	application, err := h.applicationService.GetApplication(r.Context(), applicationID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get application"))
		return
	}

	WriteData(w, http.StatusOK, application, map[string]string{
		"self": "/v1/applications/" + application.ID,
	})
}

// ListByApplicant handles GET /v1/applicants/{applicantId}/applications
func (h *ApplicationHandler) ListByApplicant(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantId")

	applications, err := h.applicationService.ListByApplicant(r.Context(), applicantID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list applications"))
		return
	}

	WriteCollection(w, http.StatusOK, applications, len(applications), map[string]string{
		"applicant": "/v1/applicants/" + applicantID,
	})
}

// ListByShelter handles GET /v1/shelters/{shelterId}/applications
func (h *ApplicationHandler) ListByShelter(w http.ResponseWriter, r *http.Request) {
	shelterID := r.PathValue("shelterId")

	applications, err := h.applicationService.ListByShelter(r.Context(), shelterID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list applications"))
		return
	}

	WriteCollection(w, http.StatusOK, applications, len(applications), map[string]string{
		"shelter": "/v1/shelters/" + shelterID,
	})
}

// UpdateStatus handles PATCH /v1/applications/{applicationId}/status
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("applicationId")

	var req UpdateStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var actor *model.TokenClaims
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		actor = &model.TokenClaims{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			ShelterID: claims.ShelterID,
		}
	}

	application, err := h.applicationService.UpdateStatus(r.Context(), service.UpdateStatusRequest{
		ApplicationID: applicationID,
		Status:        model.ApplicationStatus(req.Status),
		StaffNote:     req.StaffNote,
		Actor:         actor,
	})
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update application status"))
		return
	}

	WriteData(w, http.StatusOK, application, map[string]string{
		"self": "/v1/applications/" + application.ID,
	})
}
