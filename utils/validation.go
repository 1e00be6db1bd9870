// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatWhatsApp strips everything except digits from a phone number.
func FormatWhatsApp(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// IsValidWhatsApp checks a WhatsApp number: 10 to 15 digits after cleanup
// (country code + area code + number).
func IsValidWhatsApp(phone string) bool {
	cleaned := FormatWhatsApp(phone)
	return len(cleaned) >= 10 && len(cleaned) <= 15
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsValidSlug checks the URL fragment a business publishes its booking page
// under: lowercase letters, digits and single hyphens.
func IsValidSlug(slug string) bool {
	return slug != "" && len(slug) <= 60 && slugPattern.MatchString(strings.ToLower(slug)) && slug == strings.ToLower(slug)
}
