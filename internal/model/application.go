package model

import "time"

// ApplicationStatus represents the lifecycle state of a shelter application
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationDeclined  ApplicationStatus = "declined"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// allowedTransitions defines the legal status moves. Accepted, declined and
// withdrawn are terminal.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:   {ApplicationReviewing, ApplicationAccepted, ApplicationDeclined, ApplicationWithdrawn},
	ApplicationReviewing: {ApplicationAccepted, ApplicationDeclined, ApplicationWithdrawn},
}

// IsValid reports whether the status is a known lifecycle state
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationAccepted, ApplicationDeclined, ApplicationWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions
func (s ApplicationStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to target is allowed
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Application records one applicant applying to one shelter
type Application struct {
	ID              string            `json:"id"`
	ApplicantID     string            `json:"applicant_id"`
	ShelterID       string            `json:"shelter_id"`
	Status          ApplicationStatus `json:"status"`
	PercentageMatch *int              `json:"percentage_match,omitempty"` // score at time of application
	Note            *string           `json:"note,omitempty"`             // applicant's message
	StaffNote       *string           `json:"staff_note,omitempty"`       // set on review
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
}
