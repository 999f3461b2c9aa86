package model

import (
	"strings"
	"time"
)

// GenderPolicy represents who a shelter admits
type GenderPolicy string

const (
	GenderPolicyMenOnly    GenderPolicy = "Men Only"
	GenderPolicyWomenOnly  GenderPolicy = "Women Only"
	GenderPolicyAllGenders GenderPolicy = "All Genders"
)

// ParseGenderPolicy converts a legacy free-text policy value.
// Anything not recognizably men-only or women-only admits all genders.
func ParseGenderPolicy(s string) GenderPolicy {
	v := strings.ToLower(strings.TrimSpace(s))
	// "women only" contains "men only" as a substring, so check women first
	switch {
	case strings.Contains(v, "women only"), strings.Contains(v, "female only"):
		return GenderPolicyWomenOnly
	case strings.Contains(v, "men only"), strings.Contains(v, "male only"):
		return GenderPolicyMenOnly
	default:
		return GenderPolicyAllGenders
	}
}

// PetPolicy represents whether a shelter admits pets
type PetPolicy string

const (
	PetPolicyAllowed PetPolicy = "allowed"
	PetPolicyNoPets  PetPolicy = "no_pets"
	PetPolicyUnknown PetPolicy = ""
)

// ParsePetPolicy converts legacy values such as "Pets allowed",
// "No pets allowed" and "Assistance animals only".
func ParsePetPolicy(s string) PetPolicy {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return PetPolicyUnknown
	case strings.Contains(v, "no pets"), strings.Contains(v, "no_pets"), strings.Contains(v, "not allowed"), v == "no":
		return PetPolicyNoPets
	default:
		return PetPolicyAllowed
	}
}

// StayAllowance is the parsed form of a shelter's max stay length
type StayAllowance struct {
	Nights    int
	Unlimited bool
}

// ParseStayAllowance converts legacy max stay values such as "1 night only",
// "Up to 7 nights", "Up to 4 weeks", "Up to 3 months" and "No fixed limit".
// Returns ok=false when the value carries no recognizable duration.
func ParseStayAllowance(s string) (StayAllowance, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return StayAllowance{}, false
	}

	if strings.Contains(v, "no fixed limit") || strings.Contains(v, "no limit") ||
		strings.Contains(v, "unlimited") || strings.Contains(v, "indefinite") ||
		strings.Contains(v, "permanent") || strings.Contains(v, "long-term") ||
		strings.Contains(v, "long term") {
		return StayAllowance{Unlimited: true}, true
	}

	n := leadingNumber(v)
	if n <= 0 {
		return StayAllowance{}, false
	}

	switch {
	case strings.Contains(v, "night"), strings.Contains(v, "day"):
		return StayAllowance{Nights: n}, true
	case strings.Contains(v, "week"):
		return StayAllowance{Nights: n * 7}, true
	case strings.Contains(v, "month"):
		return StayAllowance{Nights: n * 30}, true
	case strings.Contains(v, "year"):
		return StayAllowance{Unlimited: true}, true
	default:
		return StayAllowance{}, false
	}
}

// leadingNumber finds the first run of digits in the string
func leadingNumber(s string) int {
	n := 0
	found := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			found = true
			if n > 100000 {
				return 0
			}
		} else if found {
			break
		}
	}
	if !found {
		return 0
	}
	return n
}

// Shelter is one facility in the directory. ID and ShelterName are required;
// everything else mirrors the applicant's need axes and may be absent.
type Shelter struct {
	ID          string  `json:"id"`
	ShelterName string  `json:"shelter_name"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`

	Location    string       `json:"location,omitempty"`
	Coordinates *Coordinates `json:"location_coordinates,omitempty"`

	GenderPolicy  GenderPolicy `json:"gender_policy,omitempty"`
	MaxStayLength *string      `json:"max_stay_length,omitempty"` // raw; nil means unknown

	HasFamily      bool `json:"has_family"`
	MaxFamilySize  *int `json:"max_family_size,omitempty"`
	AcceptsCouples bool `json:"accepts_couples"`

	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`

	PetPolicy PetPolicy `json:"pet_policy,omitempty"`

	// Capability fields matched against applicant preference flags
	AccessibilityFeatures   []string `json:"accessibility_features,omitempty"`
	LGBTQFriendly           YesNo    `json:"lgbtq_friendly,omitempty"`
	HasMedical              YesNo    `json:"has_medical,omitempty"`
	HasMentalHealth         YesNo    `json:"has_mental_health,omitempty"`
	SpecializedGroups       []string `json:"specialized_groups,omitempty"`
	FoodType                *string  `json:"food_type,omitempty"`
	AdditionalServices      []string `json:"additional_services,omitempty"`
	AcceptNRPF              YesNo    `json:"accept_nrpf,omitempty"`
	HousingBenefitAccepted  YesNo    `json:"housing_benefit_accepted,omitempty"`
	LocalConnectionRequired YesNo    `json:"local_connection_required,omitempty"`
	AllowAllReligions       YesNo    `json:"allow_all_religions,omitempty"`

	Capacity *int `json:"capacity,omitempty"`
	Active   bool `json:"active"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// StayAllowanceValue parses the raw max stay length. The second return is
// false when the field is absent entirely, which the stay gate treats as an
// unconditional failure. The third is false when a value is present but
// unparseable, which degrades to a permissive pass.
func (s *Shelter) StayAllowanceValue() (StayAllowance, bool, bool) {
	if s.MaxStayLength == nil || strings.TrimSpace(*s.MaxStayLength) == "" {
		return StayAllowance{}, false, false
	}
	allowance, ok := ParseStayAllowance(*s.MaxStayLength)
	return allowance, true, ok
}

// HasAccessibility reports whether the accessibility feature list names
// wheelchair or step-free access.
func (s *Shelter) HasAccessibility() bool {
	return containsFold(s.AccessibilityFeatures, "wheelchair", "accessible", "step-free", "step free")
}

// SupportsGroup reports whether the specialized groups list names the given
// cohort (e.g. "substance", "domestic abuse", "care leaver", "veteran").
func (s *Shelter) SupportsGroup(terms ...string) bool {
	return containsFold(s.SpecializedGroups, terms...)
}

// ProvidesMeals reports whether the food type indicates meals are served
func (s *Shelter) ProvidesMeals() bool {
	if s.FoodType == nil {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(*s.FoodType))
	if v == "" || strings.Contains(v, "no food") || strings.Contains(v, "none") {
		return false
	}
	return true
}

// OffersBenefitsAdvice reports whether additional services include benefits
// or welfare advice.
func (s *Shelter) OffersBenefitsAdvice() bool {
	return containsFold(s.AdditionalServices, "benefit", "welfare advice")
}

// containsFold reports whether any list entry contains any of the terms,
// case-insensitively.
func containsFold(list []string, terms ...string) bool {
	for _, item := range list {
		v := strings.ToLower(item)
		for _, term := range terms {
			if strings.Contains(v, strings.ToLower(term)) {
				return true
			}
		}
	}
	return false
}
