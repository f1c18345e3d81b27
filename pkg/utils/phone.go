package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Taiwan mobile numbers: 09 followed by eight digits
	mobileRegex = regexp.MustCompile(`^09[0-9]{8}$`)
	// Regex to remove non-digit characters
	digitsOnlyRegex = regexp.MustCompile(`[^0-9]`)
)

// ErrInvalidPhone is returned for anything that is not a Taiwan mobile number
var ErrInvalidPhone = errors.New("invalid Taiwan mobile number format")

// NormalizePhoneNumber removes separators and converts the +886 form to the local 09xxxxxxxx form
func NormalizePhoneNumber(phone string) (string, error) {
	if phone == "" {
		return "", errors.New("phone number cannot be empty")
	}

	// Remove all non-digit characters (hyphens, spaces, parentheses, etc.)
	normalized := digitsOnlyRegex.ReplaceAllString(phone, "")

	// Handle international format (+886 9XX XXX XXX)
	if strings.HasPrefix(normalized, "886") && len(normalized) == 12 {
		normalized = "0" + normalized[3:]
	}

	if !mobileRegex.MatchString(normalized) {
		return "", ErrInvalidPhone
	}

	return normalized, nil
}

// ValidateMobileNumber reports whether phone is a Taiwan mobile number in any accepted format
func ValidateMobileNumber(phone string) bool {
	_, err := NormalizePhoneNumber(phone)
	return err == nil
}
