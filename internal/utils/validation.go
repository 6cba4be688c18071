package utils

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MaxIDLength        = 100
	MaxTrailNameLength = 200
	MaxRadiusMeters    = 10000.0
)

var (
	validIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID checks path identifiers such as trail and route ids.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if len(id) > MaxIDLength {
		return errors.New("id too long (max 100 characters)")
	}
	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}
	return nil
}

// ValidateTrailName checks a user-typed trail name.
func ValidateTrailName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("trail name is required")
	}
	if len(name) > MaxTrailNameLength {
		return errors.New("trail name too long (max 200 characters)")
	}
	if dangerousPattern.MatchString(name) {
		return errors.New("trail name contains invalid characters")
	}
	return nil
}

func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadius accepts 0 through 10km.
func ValidateRadius(radius float64) error {
	if radius < 0 {
		return errors.New("radius must be non-negative")
	}
	if radius > MaxRadiusMeters {
		return errors.New("radius too large (max 10000 meters)")
	}
	return nil
}

// SanitizeInput strips HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

// ValidateAndSanitizeTrailName validates name and returns its sanitized form.
func ValidateAndSanitizeTrailName(name string) (string, error) {
	if err := ValidateTrailName(name); err != nil {
		return "", err
	}
	return SanitizeInput(name), nil
}
