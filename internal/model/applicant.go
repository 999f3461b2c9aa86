package model

import (
	"strings"
	"time"
)

// YesNo represents a tri-state answer from the intake form.
// The empty value means the question was not answered.
type YesNo string

const (
	YesNoYes     YesNo = "Yes"
	YesNoNo      YesNo = "No"
	YesNoUnknown YesNo = ""
)

// ParseYesNo converts a legacy free-text answer to a YesNo value.
// Anything that is not recognizably affirmative or negative maps to unknown.
func ParseYesNo(s string) YesNo {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return YesNoYes
	case "no", "n", "false":
		return YesNoNo
	default:
		return YesNoUnknown
	}
}

// IsYes returns true only for an explicit affirmative answer
func (y YesNo) IsYes() bool {
	return y == YesNoYes
}

// Gender represents the applicant's stated gender
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderOther   Gender = "Other"
	GenderUnknown Gender = ""
)

// ParseGender converts a legacy free-text gender value
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "man":
		return GenderMale
	case "female", "woman":
		return GenderFemale
	case "":
		return GenderUnknown
	default:
		return GenderOther
	}
}

// StayCategory represents the requested stay duration from the intake form
type StayCategory string

const (
	StayEmergency StayCategory = "emergency"
	StayShortTerm StayCategory = "short_term"
	StayLongTerm  StayCategory = "long_term"
	StayUnknown   StayCategory = ""
)

// ParseStayCategory converts legacy intake values such as
// "Emergency (tonight)", "Short-term (few days/weeks)" and
// "Long-term (months or more)" to a StayCategory.
func ParseStayCategory(s string) StayCategory {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(v, "emergency"), strings.Contains(v, "tonight"):
		return StayEmergency
	case strings.Contains(v, "short"):
		return StayShortTerm
	case strings.Contains(v, "long"), strings.Contains(v, "month"):
		return StayLongTerm
	default:
		return StayUnknown
	}
}

// GroupType represents the household composition from the intake form
type GroupType string

const (
	GroupTypeAlone   GroupType = "alone"
	GroupTypeFamily  GroupType = "family"
	GroupTypePartner GroupType = "partner"
	GroupTypeOther   GroupType = ""
)

// ParseGroupType converts legacy intake values such as "Just myself",
// "Myself and my family" and "Myself and my partner" to a GroupType.
// Unrecognized values map to GroupTypeOther, which no gate constrains.
func ParseGroupType(s string) GroupType {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "just myself", v == "alone", v == "myself":
		return GroupTypeAlone
	case strings.Contains(v, "family"):
		return GroupTypeFamily
	case strings.Contains(v, "partner"), strings.Contains(v, "couple"):
		return GroupTypePartner
	default:
		return GroupTypeOther
	}
}

// Coordinates is a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Applicant is one person/household seeking shelter, as captured by the
// multi-step intake form. Nearly every field is optional.
type Applicant struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`

	// Demographics
	DOB    *string `json:"dob,omitempty"` // raw date string, parsed on demand
	Gender Gender  `json:"gender,omitempty"`

	// Location: free-text address and/or geocoded coordinates
	Location    string       `json:"location,omitempty"`
	Coordinates *Coordinates `json:"location_coordinates,omitempty"`

	// Need/type
	ShelterType   StayCategory `json:"shelter_type,omitempty"`
	GroupType     GroupType    `json:"group_type,omitempty"`
	GroupSize     string       `json:"group_size,omitempty"` // raw, parsed permissively
	ChildrenCount *int         `json:"children_count,omitempty"`
	Pets          YesNo        `json:"pets,omitempty"`

	// Preference/need flags
	WomenOnly         YesNo `json:"women_only,omitempty"`
	Wheelchair        YesNo `json:"wheelchair,omitempty"`
	LGBTQFriendly     YesNo `json:"lgbtq_friendly,omitempty"`
	MedicalConditions YesNo `json:"medical_conditions,omitempty"`
	MentalHealth      YesNo `json:"mental_health,omitempty"`
	SubstanceUse      YesNo `json:"substance_use,omitempty"`
	DomesticAbuse     YesNo `json:"domestic_abuse,omitempty"`
	FoodAssistance    YesNo `json:"food_assistance,omitempty"`
	BenefitsHelp      YesNo `json:"benefits_help,omitempty"`
	CareLeaver        YesNo `json:"care_leaver,omitempty"`
	Veteran           YesNo `json:"veteran,omitempty"`

	ImmigrationStatus string   `json:"immigration_status,omitempty"`
	Religion          *string  `json:"religion,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	LocalConnection   []string `json:"local_connection,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// dobFormats are the date layouts accepted for the intake dob field
var dobFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2006-01-02T15:04:05",
}

// Age returns the applicant's age in whole years at the given time.
// Returns ok=false when the dob is absent or cannot be parsed; the age gate
// treats that as "no constraint" per the fail-soft policy.
func (a *Applicant) Age(now time.Time) (int, bool) {
	if a.DOB == nil || strings.TrimSpace(*a.DOB) == "" {
		return 0, false
	}

	var dob time.Time
	parsed := false
	for _, layout := range dobFormats {
		if t, err := time.Parse(layout, strings.TrimSpace(*a.DOB)); err == nil {
			dob = t
			parsed = true
			break
		}
	}
	if !parsed || dob.After(now) {
		return 0, false
	}

	years := now.Year() - dob.Year()
	// Not yet had this year's birthday
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years, true
}

// GroupSizeValue parses the raw group size string. Returns ok=false for
// empty, non-numeric, zero or negative values, all of which the group gate
// treats as "no constraint violated".
func (a *Applicant) GroupSizeValue() (int, bool) {
	v := strings.TrimSpace(a.GroupSize)
	if v == "" {
		return 0, false
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1000 {
			return 0, false
		}
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// NeedsNRPF reports whether the applicant's immigration status requires a
// shelter that accepts people with no recourse to public funds.
func (a *Applicant) NeedsNRPF() bool {
	v := strings.ToLower(a.ImmigrationStatus)
	return strings.Contains(v, "no recourse") || strings.Contains(v, "nrpf")
}

// HasReligion reports whether the applicant stated a religion that calls for
// accommodation, as opposed to leaving the question blank or declining it.
func (a *Applicant) HasReligion() bool {
	if a.Religion == nil {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(*a.Religion))
	return v != "" && v != "none" && v != "no religion" && !strings.Contains(v, "prefer not")
}

// ClaimsBenefit reports whether the benefits list names the given benefit
func (a *Applicant) ClaimsBenefit(name string) bool {
	for _, b := range a.Benefits {
		if strings.Contains(strings.ToLower(b), strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// HasLocalConnection reports whether the local connection list names at least
// one real tie (residence, work, family) rather than only a "no connection"
// placeholder.
func (a *Applicant) HasLocalConnection() bool {
	hasReal := false
	for _, c := range a.LocalConnection {
		v := strings.ToLower(strings.TrimSpace(c))
		if v == "" {
			continue
		}
		if strings.Contains(v, "no connection") || strings.Contains(v, "no local") || v == "none" {
			continue
		}
		hasReal = true
	}
	return hasReal
}
