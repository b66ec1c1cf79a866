package service

import (
	"regexp"
	"strings"
)

// Field patterns for client registration. Names and documents accept both
// Latin and Cyrillic letters.
var (
	nameRe     = regexp.MustCompile(`^[\p{L}\s\-]+$`)
	emailRe    = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+\.\w+$`)
	phoneRe    = regexp.MustCompile(`^\+?\d[\d\s\-]{7,}$`)
	documentRe = regexp.MustCompile(`^[\p{L}\p{N}\s\-]+$`)
)

// ValidateClient checks client fields before any persistence call.
// Phone and email are optional; name and document are required.
func ValidateClient(name, phone, email, document string) error {
	name = strings.TrimSpace(name)
	if name == "" || !nameRe.MatchString(name) || len(strings.Fields(name)) < 2 {
		return ErrInvalidName
	}

	phone = strings.TrimSpace(phone)
	if phone != "" && !phoneRe.MatchString(phone) {
		return ErrInvalidPhone
	}

	email = strings.TrimSpace(email)
	if email != "" && !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}

	document = strings.TrimSpace(document)
	if document == "" || !documentRe.MatchString(document) {
		return ErrInvalidDocument
	}

	return nil
}
