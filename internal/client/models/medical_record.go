package models

// MedicalRecord is the read-only record returned by
// GET /api/patients/medical-record. Every field is free text; values the
// server leaves empty are reported as "none".
type MedicalRecord struct {
	Weight               string
	Height               string
	BloodType            string
	Allergies            string
	GeneralDiseases      string
	Medications          string
	CongenitalConditions string
}

// Rows returns label/value pairs in display order.
func (m *MedicalRecord) Rows() [][2]string {
	return [][2]string{
		{"Weight (kg)", m.Weight},
		{"Height (cm)", m.Height},
		{"Blood type", m.BloodType},
		{"Allergies", m.Allergies},
		{"General diseases", m.GeneralDiseases},
		{"Medications", m.Medications},
		{"Congenital conditions", m.CongenitalConditions},
	}
}
