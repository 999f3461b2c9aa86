package handler

import (
	"net/http"
	"strconv"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// ShelterHandler handles shelter directory endpoints
type ShelterHandler struct {
	shelterService *service.ShelterService
}

// NewShelterHandler creates a new shelter handler
func NewShelterHandler(shelterService *service.ShelterService) *ShelterHandler {
	return &ShelterHandler{shelterService: shelterService}
}

// ShelterRequest represents a shelter profile submission. Policy fields
// arrive as the free-text values used by the legacy directory ("Women only
// shelter", "No pets allowed", "Up to 4 weeks") and are converted to enums
// here.
type ShelterRequest struct {
	ShelterName string  `json:"shelter_name"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`

	Location    string              `json:"location,omitempty"`
	Coordinates *CoordinatesPayload `json:"location_coordinates,omitempty"`

	GenderPolicy  string  `json:"gender_policy,omitempty"`
	MaxStayLength *string `json:"max_stay_length,omitempty"`

	HasFamily      bool `json:"has_family,omitempty"`
	MaxFamilySize  *int `json:"max_family_size,omitempty"`
	AcceptsCouples bool `json:"accepts_couples,omitempty"`

	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`

	PetPolicy string `json:"pet_policy,omitempty"`

	AccessibilityFeatures   []string `json:"accessibility_features,omitempty"`
	LGBTQFriendly           string   `json:"lgbtq_friendly,omitempty"`
	HasMedical              string   `json:"has_medical,omitempty"`
	HasMentalHealth         string   `json:"has_mental_health,omitempty"`
	SpecializedGroups       []string `json:"specialized_groups,omitempty"`
	FoodType                *string  `json:"food_type,omitempty"`
	AdditionalServices      []string `json:"additional_services,omitempty"`
	AcceptNRPF              string   `json:"accept_nrpf,omitempty"`
	HousingBenefitAccepted  string   `json:"housing_benefit_accepted,omitempty"`
	LocalConnectionRequired string   `json:"local_connection_required,omitempty"`
	AllowAllReligions       string   `json:"allow_all_religions,omitempty"`

	Capacity *int `json:"capacity,omitempty"`
}

// List handles GET /v1/shelters
func (h *ShelterHandler) List(w http.ResponseWriter, r *http.Request) {
	shelters, err := h.shelterService.ListShelters(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list shelters"))
		return
	}

	WriteCollection(w, http.StatusOK, shelters, len(shelters), nil)
}

// Nearby handles GET /v1/shelters/nearby?lat=..&lng=..&radius_km=..
// Radius defaults to the matching radius when omitted.
func (h *ShelterHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{{Field: "lat", Message: "must be a number"}}))
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{{Field: "lng", Message: "must be a number"}}))
		return
	}

	var radiusKm float64
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, model.NewValidationError([]model.FieldError{{Field: "radius_km", Message: "must be a number"}}))
			return
		}
	}

	shelters, err := h.shelterService.ListNearby(r.Context(), lat, lng, radiusKm)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "nearby shelters"))
		return
	}

	WriteCollection(w, http.StatusOK, shelters, len(shelters), nil)
}

// Create handles POST /v1/shelters
func (h *ShelterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ShelterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	shelter, err := h.shelterService.CreateShelter(r.Context(), toShelterModel(&req))
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create shelter"))
		return
	}

	WriteData(w, http.StatusCreated, shelter, map[string]string{
		"self": "/v1/shelters/" + shelter.ID,
	})
}

// Get handles GET /v1/shelters/{shelterId}
func (h *ShelterHandler) Get(w http.ResponseWriter, r *http.Request) {
	shelterID := r.PathValue("shelterId")

	shelter, err := h.shelterService.GetShelter(r.Context(), shelterID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get shelter"))
		return
	}

	WriteData(w, http.StatusOK, shelter, map[string]string{
		"self": "/v1/shelters/" + shelter.ID,
	})
}

// Update handles PATCH /v1/shelters/{shelterId}
func (h *ShelterHandler) Update(w http.ResponseWriter, r *http.Request) {
	shelterID := r.PathValue("shelterId")

	var req ShelterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	updated := toShelterModel(&req)
	updated.ID = shelterID

	shelter, err := h.shelterService.UpdateShelter(r.Context(), updated)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update shelter"))
		return
	}

	WriteData(w, http.StatusOK, shelter, map[string]string{
		"self": "/v1/shelters/" + shelter.ID,
	})
}

// Delete handles DELETE /v1/shelters/{shelterId}
func (h *ShelterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shelterID := r.PathValue("shelterId")

	if err := h.shelterService.DeleteShelter(r.Context(), shelterID); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "delete shelter"))
		return
	}

	WriteNoContent(w)
}

func toShelterModel(req *ShelterRequest) *model.Shelter {
	shelter := &model.Shelter{
		ShelterName:             req.ShelterName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Location:                req.Location,
		GenderPolicy:            model.ParseGenderPolicy(req.GenderPolicy),
		MaxStayLength:           req.MaxStayLength,
		HasFamily:               req.HasFamily,
		MaxFamilySize:           req.MaxFamilySize,
		AcceptsCouples:          req.AcceptsCouples,
		MinAge:                  req.MinAge,
		MaxAge:                  req.MaxAge,
		PetPolicy:               model.ParsePetPolicy(req.PetPolicy),
		AccessibilityFeatures:   req.AccessibilityFeatures,
		LGBTQFriendly:           model.ParseYesNo(req.LGBTQFriendly),
		HasMedical:              model.ParseYesNo(req.HasMedical),
		HasMentalHealth:         model.ParseYesNo(req.HasMentalHealth),
		SpecializedGroups:       req.SpecializedGroups,
		FoodType:                req.FoodType,
		AdditionalServices:      req.AdditionalServices,
		AcceptNRPF:              model.ParseYesNo(req.AcceptNRPF),
		HousingBenefitAccepted:  model.ParseYesNo(req.HousingBenefitAccepted),
		LocalConnectionRequired: model.ParseYesNo(req.LocalConnectionRequired),
		AllowAllReligions:       model.ParseYesNo(req.AllowAllReligions),
		Capacity:                req.Capacity,
	}
	if req.Coordinates != nil {
		shelter.Coordinates = &model.Coordinates{
			Lat: req.Coordinates.Lat,
			Lng: req.Coordinates.Lng,
		}
	}
	return shelter
}
