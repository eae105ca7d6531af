package patients

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, patient *Patient) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Patient, error)
}
