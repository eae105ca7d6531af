package models

// Consultation is a single entry of the home feed.
type Consultation struct {
	Time        string
	Title       string
	Description string
}

// DefaultAgenda is the built-in list of incoming consultations shown on the
// home screen.
func DefaultAgenda() []Consultation {
	return []Consultation{
		{Time: "10:00 AM", Title: "General Checkup", Description: "Routine physical examination and health assessment."},
		{Time: "11:30 AM", Title: "Dermatology", Description: "Consultation for skin-related issues like rashes or acne."},
		{Time: "1:00 PM", Title: "Cardiology", Description: "Heart health evaluation and ECG report review."},
		{Time: "3:00 PM", Title: "Pediatrics", Description: "Child wellness check and immunization schedule."},
		{Time: "4:30 PM", Title: "Orthopedics", Description: "Joint pain diagnosis and mobility evaluation."},
	}
}
