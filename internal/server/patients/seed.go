package patients

import (
	"context"

	"github.com/medesi/portal/internal/common"
)

// Demo account registered by SeedDemo.
const (
	DemoEmail    = "amina.benali@example.com"
	DemoPassword = "medesi-demo"
)

func ptr[T any](v T) *T { return &v }

// SeedDemo registers a demo student whose medical record mixes numeric,
// textual, null and "null" values.
func (s *Service) SeedDemo(ctx context.Context) (*Patient, error) {
	return s.Register(ctx, NewPatient{
		FirstName:   "Amina",
		FamilyName:  "Benali",
		Email:       DemoEmail,
		Password:    DemoPassword,
		Age:         21,
		PhoneNumber: "+213555000111",
		PatientType: common.UserTypeStudent,
		Record: MedicalRecord{
			WeightKg:            ptr(62.5),
			BloodGroup:          ptr("A+"),
			MedicationAllergies: ptr("Penicillin"),
			MedicationDetails:   ptr("null"),
		},
	})
}
