package model

// MatchResult is the outcome of evaluating one applicant against one shelter
// when every hard eligibility gate passes. A nil result means no match.
type MatchResult struct {
	ShelterID       string   `json:"shelter_id"`
	ShelterName     string   `json:"shelter_name"`
	PercentageMatch int      `json:"percentage_match"`
	MatchDetails    []string `json:"match_details"`
}
