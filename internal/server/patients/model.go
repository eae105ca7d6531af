package patients

import "time"

// Patient is a registered account of the development server. ID is the
// internal key; Number is the public integer id clients see.
type Patient struct {
	ID           string
	Number       int
	FirstName    string
	FamilyName   string
	Email        string
	Age          int
	PhoneNumber  string
	PatientType  string
	PasswordHash []byte
	Record       MedicalRecord
	CreatedAt    time.Time
}

// MedicalRecord holds the optional medical fields. Nil means not recorded
// and is served as JSON null.
type MedicalRecord struct {
	WeightKg             *float64 `json:"weight_kg"`
	HeightCm             *float64 `json:"height_cm"`
	BloodGroup           *string  `json:"blood_group"`
	MedicationAllergies  *string  `json:"medication_allergies"`
	GeneralDiseases      *string  `json:"general_diseases"`
	MedicationDetails    *string  `json:"medication_details"`
	CongenitalConditions *string  `json:"congenital_conditions"`
}

// ProfileUpdate lists the fields a patient may change.
type ProfileUpdate struct {
	FirstName   string
	FamilyName  string
	PhoneNumber string
}
