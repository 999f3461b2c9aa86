package service

import "math"

// GeoService handles geographic calculations
type GeoService struct{}

// NewGeoService creates a new geo service
func NewGeoService() *GeoService {
	return &GeoService{}
}

// EarthRadiusKm is the Earth's radius in kilometers
const EarthRadiusKm = 6371.0

// MatchRadiusKm is the distance threshold for the location gate. Applicant
// and shelter coordinates further apart than this never match.
const MatchRadiusKm = 50.0

// HaversineDistance calculates the distance between two points in kilometers
// using the Haversine formula (accounts for Earth's curvature)
func (s *GeoService) HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// IsWithinRadius checks if a point is within a given radius of another point
func (s *GeoService) IsWithinRadius(centerLat, centerLng, pointLat, pointLng, radiusKm float64) bool {
	distance := s.HaversineDistance(centerLat, centerLng, pointLat, pointLng)
	return distance <= radiusKm
}

// BoundingBox is a rough rectangle for initial filtering before applying
// Haversine for accuracy (optimization for database queries)
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// GetBoundingBox returns a bounding box around a center point with given radius
// This is an approximation used for database query optimization
func (s *GeoService) GetBoundingBox(lat, lng, radiusKm float64) BoundingBox {
	// At the equator 1 degree latitude is ~111 km; longitude varies by latitude
	latDelta := radiusKm / 111.0
	lngDelta := radiusKm / (111.0 * math.Cos(lat*math.Pi/180))

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}
