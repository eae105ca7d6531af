package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/medesi/portal/internal/client/models"
	"github.com/medesi/portal/internal/common"
)

type tokenPayload struct {
	Token *string `json:"token"`
}

func decodeToken(body []byte) (string, error) {
	var p tokenPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if p.Token == nil || *p.Token == "" {
		return "", fmt.Errorf("%w: no token in response", ErrMalformedResponse)
	}
	return *p.Token, nil
}

// userPayload uses pointers so a missing or null key can be told apart from
// a zero value.
type userPayload struct {
	ID          *int    `json:"id"`
	FamilyName  *string `json:"familyName"`
	FirstName   *string `json:"firstName"`
	Email       *string `json:"email"`
	Age         *int    `json:"age"`
	PhoneNumber *string `json:"phoneNumber"`
	PatientType *string `json:"patientType"`
}

// decodeUser accepts the profile only if every field is present, non-null
// and of the expected type.
func decodeUser(body []byte) (*models.User, error) {
	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("id", p.ID != nil)
	check("familyName", p.FamilyName != nil)
	check("firstName", p.FirstName != nil)
	check("email", p.Email != nil)
	check("age", p.Age != nil)
	check("phoneNumber", p.PhoneNumber != nil)
	check("patientType", p.PatientType != nil)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	return &models.User{
		ID:          *p.ID,
		FamilyName:  *p.FamilyName,
		FirstName:   *p.FirstName,
		Email:       *p.Email,
		Age:         *p.Age,
		PhoneNumber: *p.PhoneNumber,
		PatientType: *p.PatientType,
	}, nil
}

// decodeMedicalRecord never fails on a field: each one falls back to
// common.NonePlaceholder when absent, null or the literal string "null".
// Numbers (the server sends weight and height as numbers) are rendered in
// their shortest decimal form, so 72.50 and 7.25e1 both read "72.5". Other
// non-string scalars keep their JSON text. Only a body that is not a JSON
// object is rejected.
func decodeMedicalRecord(body []byte) (*models.MedicalRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: null body", ErrMalformedResponse)
	}

	field := func(key string) string {
		v, ok := raw[key]
		if !ok {
			return common.NonePlaceholder
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || bytes.Equal(v, []byte("null")) {
			return common.NonePlaceholder
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return scalarText(v)
		}
		if s == "null" {
			return common.NonePlaceholder
		}
		return s
	}

	return &models.MedicalRecord{
		Weight:               field("weight_kg"),
		Height:               field("height_cm"),
		BloodType:            field("blood_group"),
		Allergies:            field("medication_allergies"),
		GeneralDiseases:      field("general_diseases"),
		Medications:          field("medication_details"),
		CongenitalConditions: field("congenital_conditions"),
	}, nil
}

func scalarText(v []byte) string {
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return string(v)
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type messagePayload struct {
	Message string `json:"message"`
}

// decodeMessage extracts the optional "message" of an error body.
func decodeMessage(body []byte) string {
	var p messagePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	return p.Message
}
