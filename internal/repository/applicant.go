package repository

import (
	"context"
	"errors"

	"github.com/Hsrehman/SafeHaven-sub000/internal/database"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

// ApplicantRepository handles intake record data access
type ApplicantRepository struct {
	db database.Database
}

// NewApplicantRepository creates a new applicant repository
func NewApplicantRepository(db database.Database) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// Create stores a new intake record
func (r *ApplicantRepository) Create(ctx context.Context, applicant *model.Applicant) error {
	query := `
		CREATE applicant CONTENT {
			full_name: $full_name,
			email: IF $email IS NOT NULL THEN $email ELSE NONE END,
			phone: IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			dob: IF $dob IS NOT NULL THEN $dob ELSE NONE END,
			gender: $gender,
			location: $location,
			location_coordinates: IF $coordinates IS NOT NULL THEN $coordinates ELSE NONE END,
			shelter_type: $shelter_type,
			group_type: $group_type,
			group_size: $group_size,
			children_count: IF $children_count IS NOT NULL THEN $children_count ELSE NONE END,
			pets: $pets,
			women_only: $women_only,
			wheelchair: $wheelchair,
			lgbtq_friendly: $lgbtq_friendly,
			medical_conditions: $medical_conditions,
			mental_health: $mental_health,
			substance_use: $substance_use,
			domestic_abuse: $domestic_abuse,
			food_assistance: $food_assistance,
			benefits_help: $benefits_help,
			care_leaver: $care_leaver,
			veteran: $veteran,
			immigration_status: $immigration_status,
			religion: IF $religion IS NOT NULL THEN $religion ELSE NONE END,
			benefits: $benefits,
			local_connection: $local_connection,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	result, err := r.db.Query(ctx, query, applicantVars(applicant))
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	applicant.ID = created.ID
	applicant.CreatedOn = created.CreatedOn
	applicant.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an intake record by ID
func (r *ApplicantRepository) GetByID(ctx context.Context, id string) (*model.Applicant, error) {
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
	return parseApplicantRecord(data), nil
}

// Update stores changes to an intake record
func (r *ApplicantRepository) Update(ctx context.Context, applicant *model.Applicant) error {
	query := `
		UPDATE type::record($id) SET
			full_name = $full_name,
			email = $email,
			phone = $phone,
			dob = $dob,
			gender = $gender,
			location = $location,
			location_coordinates = $coordinates,
			shelter_type = $shelter_type,
			group_type = $group_type,
			group_size = $group_size,
			children_count = $children_count,
			pets = $pets,
			women_only = $women_only,
			wheelchair = $wheelchair,
			lgbtq_friendly = $lgbtq_friendly,
			medical_conditions = $medical_conditions,
			mental_health = $mental_health,
			substance_use = $substance_use,
			domestic_abuse = $domestic_abuse,
			food_assistance = $food_assistance,
			benefits_help = $benefits_help,
			care_leaver = $care_leaver,
			veteran = $veteran,
			immigration_status = $immigration_status,
			religion = $religion,
			benefits = $benefits,
			local_connection = $local_connection,
			updated_on = time::now()
	`

	vars := applicantVars(applicant)
	vars["id"] = applicant.ID
	return r.db.Execute(ctx, query, vars)
}

// List returns a page of intake records, newest first
func (r *ApplicantRepository) List(ctx context.Context, limit, offset int) ([]*model.Applicant, error) {
	query := `SELECT * FROM applicant ORDER BY created_on DESC LIMIT $limit START $offset`
	vars := map[string]interface{}{"limit": limit, "offset": offset}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, err := unwrapRecords(result)
	if err != nil {
		return nil, err
	}

	applicants := make([]*model.Applicant, 0, len(records))
	for _, data := range records {
		applicants = append(applicants, parseApplicantRecord(data))
	}
	return applicants, nil
}

func applicantVars(a *model.Applicant) map[string]interface{} {
	return map[string]interface{}{
		"full_name":          a.FullName,
		"email":              ptrToNone(a.Email),
		"phone":              ptrToNone(a.Phone),
		"dob":                ptrToNone(a.DOB),
		"gender":             string(a.Gender),
		"location":           a.Location,
		"coordinates":        coordinatesVar(a.Coordinates),
		"shelter_type":       string(a.ShelterType),
		"group_type":         string(a.GroupType),
		"group_size":         a.GroupSize,
		"children_count":     intPtrToNone(a.ChildrenCount),
		"pets":               string(a.Pets),
		"women_only":         string(a.WomenOnly),
		"wheelchair":         string(a.Wheelchair),
		"lgbtq_friendly":     string(a.LGBTQFriendly),
		"medical_conditions": string(a.MedicalConditions),
		"mental_health":      string(a.MentalHealth),
		"substance_use":      string(a.SubstanceUse),
		"domestic_abuse":     string(a.DomesticAbuse),
		"food_assistance":    string(a.FoodAssistance),
		"benefits_help":      string(a.BenefitsHelp),
		"care_leaver":        string(a.CareLeaver),
		"veteran":            string(a.Veteran),
		"immigration_status": a.ImmigrationStatus,
		"religion":           ptrToNone(a.Religion),
		"benefits":           a.Benefits,
		"local_connection":   a.LocalConnection,
	}
}

// parseApplicantRecord maps a raw document to the typed model. Free-text
// legacy values for gender, stay category, group type and the Yes/No flags
// are converted to their closed enums here.
func parseApplicantRecord(data map[string]interface{}) *model.Applicant {
	return &model.Applicant{
		ID:                convertSurrealID(data["id"]),
		FullName:          getString(data, "full_name"),
		Email:             getStringPtr(data, "email"),
		Phone:             getStringPtr(data, "phone"),
		DOB:               getStringPtr(data, "dob"),
		Gender:            model.ParseGender(getString(data, "gender")),
		Location:          getString(data, "location"),
		Coordinates:       parseCoordinates(data["location_coordinates"]),
		ShelterType:       model.ParseStayCategory(getString(data, "shelter_type")),
		GroupType:         model.ParseGroupType(getString(data, "group_type")),
		GroupSize:         getString(data, "group_size"),
		ChildrenCount:     getIntPtr(data, "children_count"),
		Pets:              model.ParseYesNo(getString(data, "pets")),
		WomenOnly:         model.ParseYesNo(getString(data, "women_only")),
		Wheelchair:        model.ParseYesNo(getString(data, "wheelchair")),
		LGBTQFriendly:     model.ParseYesNo(getString(data, "lgbtq_friendly")),
		MedicalConditions: model.ParseYesNo(getString(data, "medical_conditions")),
		MentalHealth:      model.ParseYesNo(getString(data, "mental_health")),
		SubstanceUse:      model.ParseYesNo(getString(data, "substance_use")),
		DomesticAbuse:     model.ParseYesNo(getString(data, "domestic_abuse")),
		FoodAssistance:    model.ParseYesNo(getString(data, "food_assistance")),
		BenefitsHelp:      model.ParseYesNo(getString(data, "benefits_help")),
		CareLeaver:        model.ParseYesNo(getString(data, "care_leaver")),
		Veteran:           model.ParseYesNo(getString(data, "veteran")),
		ImmigrationStatus: getString(data, "immigration_status"),
		Religion:          getStringPtr(data, "religion"),
		Benefits:          getStringSlice(data, "benefits"),
		LocalConnection:   getStringSlice(data, "local_connection"),
		CreatedOn:         timeOrZero(getTime(data, "created_on")),
		UpdatedOn:         timeOrZero(getTime(data, "updated_on")),
	}
}

// parseCoordinates extracts a {lat, lng} object, tolerating legacy documents
// where either field is missing or non-numeric.
func parseCoordinates(v interface{}) *model.Coordinates {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	if _, hasLat := m["lat"]; !hasLat {
		return nil
	}
	if _, hasLng := m["lng"]; !hasLng {
		return nil
	}
	return &model.Coordinates{
		Lat: getFloat(m, "lat"),
		Lng: getFloat(m, "lng"),
	}
}

func coordinatesVar(c *model.Coordinates) interface{} {
	if c == nil {
		return nil
	}
	return map[string]interface{}{"lat": c.Lat, "lng": c.Lng}
}
