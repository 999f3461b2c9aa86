package service

import (
	"math"
	"testing"
)

// ============================================================================
// Haversine Distance Tests
// ============================================================================

func TestHaversineDistance_LondonToParis_ReturnsKnownDistance(t *testing.T) {
	t.Parallel()
	geo := NewGeoService()

	// London to Paris is approximately 344 km
	distance := geo.HaversineDistance(51.5074, -0.1278, 48.8566, 2.3522)

	if math.Abs(distance-344) > 5 {
		t.Errorf("expected ~344 km, got %.2f km", distance)
	}
}

func TestHaversineDistance_SamePoint_ReturnsZero(t *testing.T) {
	t.Parallel()
	geo := NewGeoService()

	distance := geo.HaversineDistance(51.5074, -0.1278, 51.5074, -0.1278)

	if distance != 0 {
		t.Errorf("expected 0 km for identical points, got %.4f km", distance)
	}
}

func TestHaversineDistance_IsSymmetric(t *testing.T) {
	t.Parallel()
	geo := NewGeoService()

	d1 := geo.HaversineDistance(51.5074, -0.1278, 52.4862, -1.8904)
	d2 := geo.HaversineDistance(52.4862, -1.8904, 51.5074, -0.1278)

	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("expected symmetric distances, got %.4f and %.4f", d1, d2)
	}
}

// ============================================================================
// Radius Tests
// ============================================================================

func TestIsWithinRadius(t *testing.T) {
	t.Parallel()
	geo := NewGeoService()

	tests := []struct {
		name     string
		lat2     float64
		lng2     float64
		radius   float64
		expected bool
	}{
		{"central london to watford", 51.6565, -0.3903, MatchRadiusKm, true},
		{"central london to luton", 51.8787, -0.4200, MatchRadiusKm, true},
		{"central london to birmingham", 52.4862, -1.8904, MatchRadiusKm, false},
		{"central london to berlin", 52.5200, 13.4050, MatchRadiusKm, false},
		{"zero radius excludes everything nearby", 51.5075, -0.1278, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := geo.IsWithinRadius(51.5074, -0.1278, tt.lat2, tt.lng2, tt.radius)
			if got != tt.expected {
				t.Errorf("IsWithinRadius = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// ============================================================================
// Bounding Box Tests
// ============================================================================

func TestGetBoundingBox_ContainsCenter(t *testing.T) {
	t.Parallel()
	geo := NewGeoService()

	box := geo.GetBoundingBox(51.5074, -0.1278, 50)

	if box.MinLat >= 51.5074 || box.MaxLat <= 51.5074 {
		t.Error("bounding box latitude range does not contain center")
	}
	if box.MinLng >= -0.1278 || box.MaxLng <= -0.1278 {
		t.Error("bounding box longitude range does not contain center")
	}
}

func TestGetBoundingBox_ContainsPointsWithinRadius(t *testing.T) {
	t.Parallel()
	geo := NewGeoService()

	// Watford is within 50 km of central London and must fall inside the box
	box := geo.GetBoundingBox(51.5074, -0.1278, 50)

	lat, lng := 51.6565, -0.3903
	if lat < box.MinLat || lat > box.MaxLat || lng < box.MinLng || lng > box.MaxLng {
		t.Error("expected point within radius to be inside the bounding box")
	}
}
