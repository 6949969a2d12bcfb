package usecase

import "math"

// IsValidCoordinate reports whether latitude and longitude are finite and within range
func IsValidCoordinate(latitude, longitude float64) bool {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return false
	}
	return latitude >= -90 && latitude <= 90 &&
		longitude >= -180 && longitude <= 180
}
