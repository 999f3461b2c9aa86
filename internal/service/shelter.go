package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Hsrehman/SafeHaven-sub000/internal/model"
)

const maxShelterNameLength = 200

// ShelterRepository defines the interface for shelter storage
type ShelterRepository interface {
	Create(ctx context.Context, shelter *model.Shelter) error
	GetByID(ctx context.Context, id string) (*model.Shelter, error)
	Update(ctx context.Context, shelter *model.Shelter) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*model.Shelter, error)
}

// ShelterLocationRepository is the coordinate-bounded listing used by the
// nearby search. Kept separate from ShelterRepository because only the
// SurrealDB repository implements it.
type ShelterLocationRepository interface {
	ListNearby(ctx context.Context, box BoundingBox) ([]*model.Shelter, error)
}

// ShelterService handles shelter directory operations
type ShelterService struct {
	shelterRepo  ShelterRepository
	locationRepo ShelterLocationRepository
	geo          *GeoService
}

// ShelterServiceConfig holds configuration for the shelter service.
// LocationRepo is optional; without it the nearby search scans the full
// active directory.
type ShelterServiceConfig struct {
	ShelterRepo  ShelterRepository
	LocationRepo ShelterLocationRepository
}

// NewShelterService creates a new shelter service
func NewShelterService(cfg ShelterServiceConfig) *ShelterService {
	return &ShelterService{
		shelterRepo:  cfg.ShelterRepo,
		locationRepo: cfg.LocationRepo,
		geo:          NewGeoService(),
	}
}

// CreateShelter validates and stores a new shelter profile
func (s *ShelterService) CreateShelter(ctx context.Context, shelter *model.Shelter) (*model.Shelter, error) {
	if err := validateShelter(shelter); err != nil {
		return nil, err
	}

	shelter.ShelterName = strings.TrimSpace(shelter.ShelterName)
	shelter.Active = true
	if err := s.shelterRepo.Create(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// GetShelter retrieves a shelter by ID
func (s *ShelterService) GetShelter(ctx context.Context, id string) (*model.Shelter, error) {
	shelter, err := s.shelterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, ErrShelterNotFound
	}
	return shelter, nil
}

// UpdateShelter validates and stores changes to a shelter profile
func (s *ShelterService) UpdateShelter(ctx context.Context, shelter *model.Shelter) (*model.Shelter, error) {
	existing, err := s.shelterRepo.GetByID(ctx, shelter.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrShelterNotFound
	}

	if err := validateShelter(shelter); err != nil {
		return nil, err
	}

	shelter.ShelterName = strings.TrimSpace(shelter.ShelterName)
	shelter.CreatedOn = existing.CreatedOn
	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// DeleteShelter removes a shelter from the directory
func (s *ShelterService) DeleteShelter(ctx context.Context, id string) error {
	existing, err := s.shelterRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrShelterNotFound
	}
	return s.shelterRepo.Delete(ctx, id)
}

// ListShelters returns every active shelter in the directory
func (s *ShelterService) ListShelters(ctx context.Context) ([]*model.Shelter, error) {
	return s.shelterRepo.ListActive(ctx)
}

// ListNearby returns active shelters within radiusKm of a point, closest
// first. A bounding-box query narrows the candidate set when the repository
// supports it; the precise haversine check runs either way. Shelters
// without usable coordinates are excluded.
func (s *ShelterService) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*model.Shelter, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidCoordinates
	}
	if radiusKm <= 0 {
		radiusKm = MatchRadiusKm
	}

	var candidates []*model.Shelter
	var err error
	if s.locationRepo != nil {
		candidates, err = s.locationRepo.ListNearby(ctx, s.geo.GetBoundingBox(lat, lng, radiusKm))
	} else {
		candidates, err = s.shelterRepo.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	type scored struct {
		shelter  *model.Shelter
		distance float64
	}
	nearby := make([]scored, 0, len(candidates))
	for _, shelter := range candidates {
		if !validCoordinates(shelter.Coordinates) {
			continue
		}
		d := s.geo.HaversineDistance(lat, lng, shelter.Coordinates.Lat, shelter.Coordinates.Lng)
		if d <= radiusKm {
			nearby = append(nearby, scored{shelter: shelter, distance: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].distance != nearby[j].distance {
			return nearby[i].distance < nearby[j].distance
		}
		return nearby[i].shelter.ShelterName < nearby[j].shelter.ShelterName
	})

	shelters := make([]*model.Shelter, 0, len(nearby))
	for _, n := range nearby {
		shelters = append(shelters, n.shelter)
	}
	return shelters, nil
}

func validateShelter(shelter *model.Shelter) error {
	name := strings.TrimSpace(shelter.ShelterName)
	if name == "" {
		return ErrShelterNameRequired
	}
	if len(name) > maxShelterNameLength {
		return ErrShelterNameTooLong
	}
	if shelter.MinAge != nil && shelter.MaxAge != nil && *shelter.MinAge > *shelter.MaxAge {
		return ErrInvalidAgeRange
	}
	if shelter.Capacity != nil && *shelter.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if shelter.Coordinates != nil {
		c := shelter.Coordinates
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			return ErrInvalidCoordinates
		}
	}
	return nil
}
