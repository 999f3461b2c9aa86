package repository

import (
	"context"
	"errors"

	"github.com/Hsrehman/SafeHaven-sub000/internal/database"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/service"
)

// ShelterRepository handles shelter directory data access
type ShelterRepository struct {
	db database.Database
}

// NewShelterRepository creates a new shelter repository
func NewShelterRepository(db database.Database) *ShelterRepository {
	return &ShelterRepository{db: db}
}

// Create stores a new shelter profile
func (r *ShelterRepository) Create(ctx context.Context, shelter *model.Shelter) error {
	query := `
		CREATE shelter CONTENT {
			shelter_name: $shelter_name,
			email: IF $email IS NOT NULL THEN $email ELSE NONE END,
			phone: IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			location: $location,
			location_coordinates: IF $coordinates IS NOT NULL THEN $coordinates ELSE NONE END,
			gender_policy: $gender_policy,
			max_stay_length: IF $max_stay_length IS NOT NULL THEN $max_stay_length ELSE NONE END,
			has_family: $has_family,
			max_family_size: IF $max_family_size IS NOT NULL THEN $max_family_size ELSE NONE END,
			accepts_couples: $accepts_couples,
			min_age: IF $min_age IS NOT NULL THEN $min_age ELSE NONE END,
			max_age: IF $max_age IS NOT NULL THEN $max_age ELSE NONE END,
			pet_policy: $pet_policy,
			accessibility_features: $accessibility_features,
			lgbtq_friendly: $lgbtq_friendly,
			has_medical: $has_medical,
			has_mental_health: $has_mental_health,
			specialized_groups: $specialized_groups,
			food_type: IF $food_type IS NOT NULL THEN $food_type ELSE NONE END,
			additional_services: $additional_services,
			accept_nrpf: $accept_nrpf,
			housing_benefit_accepted: $housing_benefit_accepted,
			local_connection_required: $local_connection_required,
			allow_all_religions: $allow_all_religions,
			capacity: IF $capacity IS NOT NULL THEN $capacity ELSE NONE END,
			active: $active,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	result, err := r.db.Query(ctx, query, shelterVars(shelter))
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	shelter.ID = created.ID
	shelter.CreatedOn = created.CreatedOn
	shelter.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a shelter by ID
func (r *ShelterRepository) GetByID(ctx context.Context, id string) (*model.Shelter, error) {
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
	return parseShelterRecord(data), nil
}

// Update stores changes to a shelter profile
func (r *ShelterRepository) Update(ctx context.Context, shelter *model.Shelter) error {
	query := `
		UPDATE type::record($id) SET
			shelter_name = $shelter_name,
			email = $email,
			phone = $phone,
			location = $location,
			location_coordinates = $coordinates,
			gender_policy = $gender_policy,
			max_stay_length = $max_stay_length,
			has_family = $has_family,
			max_family_size = $max_family_size,
			accepts_couples = $accepts_couples,
			min_age = $min_age,
			max_age = $max_age,
			pet_policy = $pet_policy,
			accessibility_features = $accessibility_features,
			lgbtq_friendly = $lgbtq_friendly,
			has_medical = $has_medical,
			has_mental_health = $has_mental_health,
			specialized_groups = $specialized_groups,
			food_type = $food_type,
			additional_services = $additional_services,
			accept_nrpf = $accept_nrpf,
			housing_benefit_accepted = $housing_benefit_accepted,
			local_connection_required = $local_connection_required,
			allow_all_religions = $allow_all_religions,
			capacity = $capacity,
			active = $active,
			updated_on = time::now()
	`

	vars := shelterVars(shelter)
	vars["id"] = shelter.ID
	return r.db.Execute(ctx, query, vars)
}

// Delete removes a shelter from the directory along with every application
// that references it. Both deletes run in one transaction so a failure
// cannot leave orphaned applications behind.
func (r *ShelterRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE application WHERE shelter = type::record($shelter)`, map[string]interface{}{"shelter": id})
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})

	return batch.Execute(ctx, r.db)
}

// ListActive returns every shelter currently accepting applications
func (r *ShelterRepository) ListActive(ctx context.Context) ([]*model.Shelter, error) {
	query := `SELECT * FROM shelter WHERE active = true ORDER BY shelter_name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records, err := unwrapRecords(result)
	if err != nil {
		return nil, err
	}

	shelters := make([]*model.Shelter, 0, len(records))
	for _, data := range records {
		shelters = append(shelters, parseShelterRecord(data))
	}
	return shelters, nil
}

// ListNearby returns active shelters whose coordinates fall inside the
// bounding box around a point. Rough prefilter; callers apply the precise
// distance check.
func (r *ShelterRepository) ListNearby(ctx context.Context, box service.BoundingBox) ([]*model.Shelter, error) {
	query := `
		SELECT * FROM shelter
		WHERE active = true
			AND location_coordinates.lat >= $min_lat
			AND location_coordinates.lat <= $max_lat
			AND location_coordinates.lng >= $min_lng
			AND location_coordinates.lng <= $max_lng
		ORDER BY shelter_name ASC
	`
	vars := map[string]interface{}{
		"min_lat": box.MinLat,
		"max_lat": box.MaxLat,
		"min_lng": box.MinLng,
		"max_lng": box.MaxLng,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, err := unwrapRecords(result)
	if err != nil {
		return nil, err
	}

	shelters := make([]*model.Shelter, 0, len(records))
	for _, data := range records {
		shelters = append(shelters, parseShelterRecord(data))
	}
	return shelters, nil
}

func shelterVars(s *model.Shelter) map[string]interface{} {
	return map[string]interface{}{
		"shelter_name":              s.ShelterName,
		"email":                     ptrToNone(s.Email),
		"phone":                     ptrToNone(s.Phone),
		"location":                  s.Location,
		"coordinates":               coordinatesVar(s.Coordinates),
		"gender_policy":             string(s.GenderPolicy),
		"max_stay_length":           ptrToNone(s.MaxStayLength),
		"has_family":                s.HasFamily,
		"max_family_size":           intPtrToNone(s.MaxFamilySize),
		"accepts_couples":           s.AcceptsCouples,
		"min_age":                   intPtrToNone(s.MinAge),
		"max_age":                   intPtrToNone(s.MaxAge),
		"pet_policy":                string(s.PetPolicy),
		"accessibility_features":    s.AccessibilityFeatures,
		"lgbtq_friendly":            string(s.LGBTQFriendly),
		"has_medical":               string(s.HasMedical),
		"has_mental_health":         string(s.HasMentalHealth),
		"specialized_groups":        s.SpecializedGroups,
		"food_type":                 ptrToNone(s.FoodType),
		"additional_services":       s.AdditionalServices,
		"accept_nrpf":               string(s.AcceptNRPF),
		"housing_benefit_accepted":  string(s.HousingBenefitAccepted),
		"local_connection_required": string(s.LocalConnectionRequired),
		"allow_all_religions":       string(s.AllowAllReligions),
		"capacity":                  intPtrToNone(s.Capacity),
		"active":                    s.Active,
	}
}

// parseShelterRecord maps a raw document to the typed model. Legacy policy
// strings ("Women only shelter", "No pets allowed") are converted to their
// closed enums here; the raw max stay length is kept as-is because the
// matching engine parses it on demand.
func parseShelterRecord(data map[string]interface{}) *model.Shelter {
	return &model.Shelter{
		ID:                      convertSurrealID(data["id"]),
		ShelterName:             getString(data, "shelter_name"),
		Email:                   getStringPtr(data, "email"),
		Phone:                   getStringPtr(data, "phone"),
		Location:                getString(data, "location"),
		Coordinates:             parseCoordinates(data["location_coordinates"]),
		GenderPolicy:            model.ParseGenderPolicy(getString(data, "gender_policy")),
		MaxStayLength:           getStringPtr(data, "max_stay_length"),
		HasFamily:               getBool(data, "has_family"),
		MaxFamilySize:           getIntPtr(data, "max_family_size"),
		AcceptsCouples:          getBool(data, "accepts_couples"),
		MinAge:                  getIntPtr(data, "min_age"),
		MaxAge:                  getIntPtr(data, "max_age"),
		PetPolicy:               model.ParsePetPolicy(getString(data, "pet_policy")),
		AccessibilityFeatures:   getStringSlice(data, "accessibility_features"),
		LGBTQFriendly:           model.ParseYesNo(getString(data, "lgbtq_friendly")),
		HasMedical:              model.ParseYesNo(getString(data, "has_medical")),
		HasMentalHealth:         model.ParseYesNo(getString(data, "has_mental_health")),
		SpecializedGroups:       getStringSlice(data, "specialized_groups"),
		FoodType:                getStringPtr(data, "food_type"),
		AdditionalServices:      getStringSlice(data, "additional_services"),
		AcceptNRPF:              model.ParseYesNo(getString(data, "accept_nrpf")),
		HousingBenefitAccepted:  model.ParseYesNo(getString(data, "housing_benefit_accepted")),
		LocalConnectionRequired: model.ParseYesNo(getString(data, "local_connection_required")),
		AllowAllReligions:       model.ParseYesNo(getString(data, "allow_all_religions")),
		Capacity:                getIntPtr(data, "capacity"),
		Active:                  getBool(data, "active"),
		CreatedOn:               timeOrZero(getTime(data, "created_on")),
		UpdatedOn:               timeOrZero(getTime(data, "updated_on")),
	}
}
