package models

import "strings"

// User is the patient profile returned by GET /api/patients/me.
type User struct {
	ID          int
	FamilyName  string
	FirstName   string
	Email       string
	Age         int
	PhoneNumber string
	// PatientType is a category tag such as "student" or "patient".
	PatientType string
}

// FullName is "<first> <family>", trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.FamilyName)
}

// ProfileUpdate is the body of PUT /api/patients/me.
type ProfileUpdate struct {
	FirstName   string `json:"firstName"`
	FamilyName  string `json:"familyName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Placeholders used by SplitFullName when a name part is missing.
const (
	FirstNamePlaceholder  = "firstName"
	FamilyNamePlaceholder = "familyName"
)

// SplitFullName splits an edited full name at the first space: the first
// token is the first name and the remainder the family name. Missing parts
// are replaced by FirstNamePlaceholder and FamilyNamePlaceholder.
func SplitFullName(fullName string) (first, family string) {
	first, family, _ = strings.Cut(strings.TrimSpace(fullName), " ")
	family = strings.TrimSpace(family)
	if first == "" {
		first = FirstNamePlaceholder
	}
	if family == "" {
		family = FamilyNamePlaceholder
	}
	return first, family
}
