// Package patients implements the patient directory of the development
// server: registration, password login, reset requests and profile access.
package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medesi/portal/internal/common"
	"github.com/medesi/portal/internal/logging"
	"github.com/medesi/portal/internal/server/auth"
	"github.com/medesi/portal/internal/server/config"
)

// NewPatient is the registration input.
type NewPatient struct {
	FirstName   string
	FamilyName  string
	Email       string
	Password    string
	Age         int
	PhoneNumber string
	PatientType string
	Record      MedicalRecord
}

type Service struct {
	repo                        Repository
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:                        repo,
		logger:                      logger,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func (s *Service) Register(ctx context.Context, in NewPatient) (*Patient, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.repo.Create(ctx, &Patient{
		FirstName:    in.FirstName,
		FamilyName:   in.FamilyName,
		Email:        strings.TrimSpace(in.Email),
		Age:          in.Age,
		PhoneNumber:  in.PhoneNumber,
		PatientType:  in.PatientType,
		PasswordHash: hash,
		Record:       in.Record,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating patient: %w", err)
	}
	return p, nil
}

// Login checks the credentials and the requested account type and returns
// a signed session token. Unknown emails, wrong passwords and mismatched
// types all yield common.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, password, userType string) (string, error) {
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", err
	}

	if userType != "" && userType != p.PatientType {
		return "", common.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(p.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// ForgotPassword issues a reset link for a known email. No mail is sent;
// the link is written to the log.
func (s *Service) ForgotPassword(ctx context.Context, email, userType string) error {
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if userType != "" && userType != p.PatientType {
		return common.ErrNotFound
	}

	resetToken, err := common.MakeRandHexString(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	s.logger.Info(ctx, "password reset link issued", "patient", p.ID, "reset_token", resetToken)
	return nil
}

// Authenticate resolves a bearer token to the patient id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	return auth.GetPatientIDFromToken(token, s.jwtSecret)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Patient, error) {
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.FamilyName = strings.TrimSpace(update.FamilyName)
	update.PhoneNumber = strings.TrimSpace(update.PhoneNumber)
	if update.FirstName == "" {
		return nil, fmt.Errorf("%w: firstName is required", common.ErrInvalidArgument)
	}
	return s.repo.UpdateProfile(ctx, id, update)
}

func (s *Service) MedicalRecord(ctx context.Context, id string) (*MedicalRecord, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p.Record, nil
}
