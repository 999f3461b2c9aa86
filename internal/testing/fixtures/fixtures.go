// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	applicant := f.CreateApplicant(t)
//	shelter := f.CreateShelter(t)
//	app := f.CreateApplication(t, applicant, shelter)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/Hsrehman/SafeHaven-sub000/internal/database"
	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
	"github.com/Hsrehman/SafeHaven-sub000/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Factory creates test entities in the database
type Factory struct {
	db           database.Database
	users        *repository.UserRepository
	applicants   *repository.ApplicantRepository
	shelters     *repository.ShelterRepository
	applications *repository.ApplicationRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		db:           db,
		users:        repository.NewUserRepository(db),
		applicants:   repository.NewApplicantRepository(db),
		shelters:     repository.NewShelterRepository(db),
		applications: repository.NewApplicationRepository(db),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes staff account creation
type UserOpts struct {
	Email         string
	Name          string
	Password      string
	Role          model.UserRole
	ShelterID     *string
	EmailVerified bool
}

// CreateUser creates a staff account with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Email:         fmt.Sprintf("staff_%s@test.local", randomID()),
		Name:          fmt.Sprintf("Staff %s", randomID()),
		Password:      "testpass123",
		Role:          model.UserRoleStaff,
		EmailVerified: true,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	hashStr := string(hash)

	user := &model.User{
		Email:         o.Email,
		Hash:          &hashStr,
		Name:          &o.Name,
		Role:          o.Role,
		ShelterID:     o.ShelterID,
		EmailVerified: o.EmailVerified,
	}
	if err := f.users.Create(ctx(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// CreateStaffFor creates a staff account that manages the given shelter
func (f *Factory) CreateStaffFor(t *testing.T, shelter *model.Shelter) *model.User {
	t.Helper()
	return f.CreateUser(t, func(o *UserOpts) {
		o.ShelterID = &shelter.ID
	})
}

// CreateAdmin creates an admin account with access across shelters
func (f *Factory) CreateAdmin(t *testing.T) *model.User {
	t.Helper()
	return f.CreateUser(t, func(o *UserOpts) {
		o.Role = model.UserRoleAdmin
	})
}

// ============================================================================
// Applicant Fixtures
// ============================================================================

// ApplicantOpts customizes intake record creation
type ApplicantOpts struct {
	FullName    string
	Location    string
	Coordinates *model.Coordinates
	Gender      model.Gender
	DOB         *string
	ShelterType model.StayCategory
	GroupType   model.GroupType
	Pets        model.YesNo
	WomenOnly   model.YesNo
	Wheelchair  model.YesNo
}

// CreateApplicant creates an intake record. The default applicant is a
// single adult in London looking for an emergency stay, which passes every
// gate of the default CreateShelter fixture.
func (f *Factory) CreateApplicant(t *testing.T, opts ...func(*ApplicantOpts)) *model.Applicant {
	t.Helper()

	o := &ApplicantOpts{
		FullName:    fmt.Sprintf("Applicant %s", randomID()),
		Location:    "London, UK",
		ShelterType: model.StayEmergency,
		GroupType:   model.GroupTypeAlone,
		Pets:        model.YesNoNo,
	}
	for _, fn := range opts {
		fn(o)
	}

	applicant := &model.Applicant{
		FullName:    o.FullName,
		Location:    o.Location,
		Coordinates: o.Coordinates,
		Gender:      o.Gender,
		DOB:         o.DOB,
		ShelterType: o.ShelterType,
		GroupType:   o.GroupType,
		Pets:        o.Pets,
		WomenOnly:   o.WomenOnly,
		Wheelchair:  o.Wheelchair,
	}
	if err := f.applicants.Create(ctx(), applicant); err != nil {
		t.Fatalf("fixtures: failed to create applicant: %v", err)
	}
	return applicant
}

// ============================================================================
// Shelter Fixtures
// ============================================================================

// ShelterOpts customizes shelter directory entries
type ShelterOpts struct {
	Name                  string
	Location              string
	Coordinates           *model.Coordinates
	GenderPolicy          model.GenderPolicy
	MaxStayLength         *string
	PetPolicy             model.PetPolicy
	AccessibilityFeatures []string
	Active                bool
}

// CreateShelter creates an active all-genders shelter in London
func (f *Factory) CreateShelter(t *testing.T, opts ...func(*ShelterOpts)) *model.Shelter {
	t.Helper()

	maxStay := "Up to 4 weeks"
	o := &ShelterOpts{
		Name:          fmt.Sprintf("Shelter %s", randomID()),
		Location:      "London, UK",
		GenderPolicy:  model.GenderPolicyAllGenders,
		MaxStayLength: &maxStay,
		Active:        true,
	}
	for _, fn := range opts {
		fn(o)
	}

	shelter := &model.Shelter{
		ShelterName:           o.Name,
		Location:              o.Location,
		Coordinates:           o.Coordinates,
		GenderPolicy:          o.GenderPolicy,
		MaxStayLength:         o.MaxStayLength,
		PetPolicy:             o.PetPolicy,
		AccessibilityFeatures: o.AccessibilityFeatures,
		Active:                o.Active,
	}
	if err := f.shelters.Create(ctx(), shelter); err != nil {
		t.Fatalf("fixtures: failed to create shelter: %v", err)
	}
	return shelter
}

// ============================================================================
// Application Fixtures
// ============================================================================

// ApplicationOpts customizes application creation
type ApplicationOpts struct {
	Status          model.ApplicationStatus
	PercentageMatch *int
	Note            *string
}

// CreateApplication creates an application from applicant to shelter,
// pending by default
func (f *Factory) CreateApplication(t *testing.T, applicant *model.Applicant, shelter *model.Shelter, opts ...func(*ApplicationOpts)) *model.Application {
	t.Helper()

	o := &ApplicationOpts{
		Status: model.ApplicationPending,
	}
	for _, fn := range opts {
		fn(o)
	}

	application := &model.Application{
		ApplicantID:     applicant.ID,
		ShelterID:       shelter.ID,
		Status:          o.Status,
		PercentageMatch: o.PercentageMatch,
		Note:            o.Note,
	}
	if err := f.applications.Create(ctx(), application); err != nil {
		t.Fatalf("fixtures: failed to create application: %v", err)
	}
	return application
}
