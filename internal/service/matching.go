package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

// Scoring constants. Any pair that clears every hard gate scores at least
// the baseline; each satisfied preference adds an equal share of the
// remaining headroom, so all fourteen matched yields exactly 100.
const (
	baselineScore = 84.0
	maxScore      = 100.0
)

// shortTermNights and longTermNights are the minimum shelter stay allowances
// for short-term and long-term placement requests.
const (
	shortTermNights = 28
	longTermNights  = 90
)

// preferenceCheck is one row of the soft-scoring table: applies asks whether
// the applicant expressed the need, satisfied asks whether the shelter meets
// it. Rows are evaluated in fixed order and each satisfied row appends its
// label to the match details.
type preferenceCheck struct {
	label     string
	applies   func(a *model.Applicant) bool
	satisfied func(a *model.Applicant, s *model.Shelter) bool
}

// preferenceChecks is the full soft-scoring table in evaluation order
var preferenceChecks = []preferenceCheck{
	{
		label:     "Matches wheelchair accessibility needs",
		applies:   func(a *model.Applicant) bool { return a.Wheelchair.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.HasAccessibility() },
	},
	{
		label:     "LGBTQ+ friendly environment",
		applies:   func(a *model.Applicant) bool { return a.LGBTQFriendly.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.LGBTQFriendly.IsYes() },
	},
	{
		label:     "Provides medical support",
		applies:   func(a *model.Applicant) bool { return a.MedicalConditions.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.HasMedical.IsYes() },
	},
	{
		label:     "Provides mental health support",
		applies:   func(a *model.Applicant) bool { return a.MentalHealth.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.HasMentalHealth.IsYes() },
	},
	{
		label:     "Supports people recovering from substance use",
		applies:   func(a *model.Applicant) bool { return a.SubstanceUse.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.SupportsGroup("substance") },
	},
	{
		label:   "Supports survivors of domestic abuse",
		applies: func(a *model.Applicant) bool { return a.DomesticAbuse.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool {
			return s.SupportsGroup("domestic abuse", "domestic violence")
		},
	},
	{
		label:     "Provides meals and food assistance",
		applies:   func(a *model.Applicant) bool { return a.FoodAssistance.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.ProvidesMeals() },
	},
	{
		label:     "Offers benefits advice",
		applies:   func(a *model.Applicant) bool { return a.BenefitsHelp.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.OffersBenefitsAdvice() },
	},
	{
		label:     "Accepts people with no recourse to public funds",
		applies:   func(a *model.Applicant) bool { return a.NeedsNRPF() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.AcceptNRPF.IsYes() },
	},
	{
		label:     "Supports care leavers",
		applies:   func(a *model.Applicant) bool { return a.CareLeaver.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.SupportsGroup("care leaver") },
	},
	{
		label:   "Supports veterans",
		applies: func(a *model.Applicant) bool { return a.Veteran.IsYes() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool {
			return s.SupportsGroup("veteran", "ex-forces", "armed forces")
		},
	},
	{
		label:     "Accepts housing benefit",
		applies:   func(a *model.Applicant) bool { return a.ClaimsBenefit("housing benefit") },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.HousingBenefitAccepted.IsYes() },
	},
	{
		label:   "Serves people with a local connection",
		applies: func(a *model.Applicant) bool { return a.HasLocalConnection() },
		satisfied: func(a *model.Applicant, s *model.Shelter) bool {
			return !s.LocalConnectionRequired.IsYes() || a.HasLocalConnection()
		},
	},
	{
		label:     "Welcomes all religions",
		applies:   func(a *model.Applicant) bool { return a.HasReligion() },
		satisfied: func(_ *model.Applicant, s *model.Shelter) bool { return s.AllowAllReligions.IsYes() },
	},
}

// preferenceWeight is the score contribution of one satisfied preference
var preferenceWeight = (maxScore - baselineScore) / float64(len(preferenceChecks))

// MatchEngine evaluates applicant/shelter pairs. It is pure and safe for
// concurrent use.
type MatchEngine struct {
	geo *GeoService
}

// NewMatchEngine creates a new match engine
func NewMatchEngine() *MatchEngine {
	return &MatchEngine{geo: NewGeoService()}
}

// Evaluate applies the hard eligibility gates in order and, if all pass,
// computes the weighted preference score. Returns nil for a malformed
// shelter record or any gate failure. It never returns an error; malformed
// applicant data degrades to permissive gate outcomes instead.
func (e *MatchEngine) Evaluate(applicant *model.Applicant, shelter *model.Shelter) *model.MatchResult {
	return e.EvaluateAt(applicant, shelter, time.Now())
}

// EvaluateAt is Evaluate with an explicit reference time for age calculation
func (e *MatchEngine) EvaluateAt(applicant *model.Applicant, shelter *model.Shelter, now time.Time) *model.MatchResult {
	if applicant == nil || shelter == nil || shelter.ID == "" || shelter.ShelterName == "" {
		return nil
	}

	// Hard gates, short-circuit on first failure
	if !e.locationGate(applicant, shelter) {
		return nil
	}
	if !genderGate(applicant, shelter) {
		return nil
	}
	if !stayGate(applicant, shelter) {
		return nil
	}
	if !groupGate(applicant, shelter) {
		return nil
	}
	if !ageGate(applicant, shelter, now) {
		return nil
	}
	if !petGate(applicant, shelter) {
		return nil
	}

	// Soft scoring over the preference table
	score := baselineScore
	details := make([]string, 0, len(preferenceChecks))
	for _, check := range preferenceChecks {
		if check.applies(applicant) && check.satisfied(applicant, shelter) {
			score += preferenceWeight
			details = append(details, check.label)
		}
	}

	pct := int(math.Round(score))
	if pct > 100 {
		pct = 100
	}

	return &model.MatchResult{
		ShelterID:       shelter.ID,
		ShelterName:     shelter.ShelterName,
		PercentageMatch: pct,
		MatchDetails:    details,
	}
}

// locationGate passes when the two parties are close enough. Coordinate
// distance is preferred; unusable coordinates on either side fall back to
// normalized city-token comparison of the free-text locations.
func (e *MatchEngine) locationGate(a *model.Applicant, s *model.Shelter) bool {
	if validCoordinates(a.Coordinates) && validCoordinates(s.Coordinates) {
		return e.geo.IsWithinRadius(a.Coordinates.Lat, a.Coordinates.Lng, s.Coordinates.Lat, s.Coordinates.Lng, MatchRadiusKm)
	}

	applicantCity := NormalizeCity(a.Location)
	shelterCity := NormalizeCity(s.Location)
	if applicantCity == "" || shelterCity == "" {
		return false
	}
	return applicantCity == shelterCity
}

// validCoordinates rejects absent, NaN and out-of-range points
func validCoordinates(c *model.Coordinates) bool {
	if c == nil {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// genderGate enforces the shelter's gender policy. A women-only shelter
// admits anyone who identifies as female or explicitly opted into women-only
// accommodation on the intake form.
func genderGate(a *model.Applicant, s *model.Shelter) bool {
	switch s.GenderPolicy {
	case model.GenderPolicyMenOnly:
		return a.Gender == model.GenderMale
	case model.GenderPolicyWomenOnly:
		return a.Gender == model.GenderFemale || a.WomenOnly.IsYes()
	default:
		return true
	}
}

// stayGate checks the shelter's max stay length against the requested stay
// category. A shelter with no stay length at all is ineligible; a present
// but unparseable value passes permissively.
func stayGate(a *model.Applicant, s *model.Shelter) bool {
	allowance, present, parsed := s.StayAllowanceValue()
	if !present {
		return false
	}
	if !parsed {
		return true
	}

	switch a.ShelterType {
	case model.StayEmergency:
		return allowance.Unlimited || allowance.Nights >= 1
	case model.StayShortTerm:
		return allowance.Unlimited || allowance.Nights >= shortTermNights
	case model.StayLongTerm:
		return allowance.Unlimited || allowance.Nights >= longTermNights
	default:
		return true
	}
}

// groupGate checks household composition against family/couple policy.
// Unparseable group sizes and absent family size limits pass.
func groupGate(a *model.Applicant, s *model.Shelter) bool {
	switch a.GroupType {
	case model.GroupTypeAlone:
		return true
	case model.GroupTypeFamily:
		if !s.HasFamily {
			return false
		}
		if s.MaxFamilySize == nil {
			return true
		}
		size, ok := a.GroupSizeValue()
		if !ok {
			return true
		}
		return size <= *s.MaxFamilySize
	case model.GroupTypePartner:
		return s.AcceptsCouples
	default:
		return true
	}
}

// ageGate enforces inclusive min/max age bounds. An unparseable date of
// birth imposes no constraint.
func ageGate(a *model.Applicant, s *model.Shelter, now time.Time) bool {
	if s.MinAge == nil && s.MaxAge == nil {
		return true
	}
	age, ok := a.Age(now)
	if !ok {
		return true
	}
	if s.MinAge != nil && age < *s.MinAge {
		return false
	}
	if s.MaxAge != nil && age > *s.MaxAge {
		return false
	}
	return true
}

// petGate only constrains applicants who bring a pet
func petGate(a *model.Applicant, s *model.Shelter) bool {
	if !a.Pets.IsYes() {
		return true
	}
	return s.PetPolicy != model.PetPolicyNoPets
}

// MatchApplicantRepository is the applicant lookup the match service needs
type MatchApplicantRepository interface {
	GetByID(ctx context.Context, id string) (*model.Applicant, error)
}

// MatchShelterRepository is the shelter listing the match service needs
type MatchShelterRepository interface {
	ListActive(ctx context.Context) ([]*model.Shelter, error)
}

// MatchService runs the engine across the shelter directory for one applicant
type MatchService struct {
	engine        *MatchEngine
	applicantRepo MatchApplicantRepository
	shelterRepo   MatchShelterRepository
}

// MatchServiceConfig holds configuration for the match service
type MatchServiceConfig struct {
	ApplicantRepo MatchApplicantRepository
	ShelterRepo   MatchShelterRepository
}

// NewMatchService creates a new match service
func NewMatchService(cfg MatchServiceConfig) *MatchService {
	return &MatchService{
		engine:        NewMatchEngine(),
		applicantRepo: cfg.ApplicantRepo,
		shelterRepo:   cfg.ShelterRepo,
	}
}

// Engine exposes the underlying evaluator for single-pair checks
func (s *MatchService) Engine() *MatchEngine {
	return s.engine
}

// MatchShelters evaluates the applicant against every active shelter and
// returns the non-nil results ranked by score descending, ties broken by
// shelter name for a stable order.
func (s *MatchService) MatchShelters(ctx context.Context, applicantID string) ([]*model.MatchResult, error) {
	applicant, err := s.applicantRepo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, ErrApplicantNotFound
	}

	shelters, err := s.shelterRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*model.MatchResult, 0, len(shelters))
	for _, shelter := range shelters {
		if result := s.engine.Evaluate(applicant, shelter); result != nil {
			results = append(results, result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].PercentageMatch != results[j].PercentageMatch {
			return results[i].PercentageMatch > results[j].PercentageMatch
		}
		return results[i].ShelterName < results[j].ShelterName
	})

	return results, nil
}
