// Package credentials owns the locally persisted session: the bearer token
// and the cached profile and medical-record snapshot.
//
// Store is the only writer of the user_prefs table. Calls are serialised by
// a mutex, and every logical record (a token, a profile, a medical record, a
// field map) is written in one transaction, so readers never observe a mix
// of old and new values of the same record. Concurrent records are
// last-write-wins per key.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/medesi/portal/internal/client/models"
	"github.com/medesi/portal/internal/client/repositories/preferences"
	"github.com/medesi/portal/internal/dbx"
)

// Preference keys.
const (
	KeyToken = "auth_token"

	KeyID          = "id"
	KeyFirstName   = "firstName"
	KeyFamilyName  = "familyName"
	KeyEmail       = "email"
	KeyAge         = "age"
	KeyPhoneNumber = "phoneNumber"
	KeyPatientType = "patientType"

	KeyWeight      = "weight"
	KeyHeight      = "height"
	KeyBlood       = "blood"
	KeyAllergies   = "allergies"
	KeyMaladies    = "maladies"
	KeyMedications = "medications"
	KeyAffection   = "affection"
)

var (
	userKeys          = []string{KeyID, KeyFirstName, KeyFamilyName, KeyEmail, KeyAge, KeyPhoneNumber, KeyPatientType}
	medicalRecordKeys = []string{KeyWeight, KeyHeight, KeyBlood, KeyAllergies, KeyMaladies, KeyMedications, KeyAffection}
)

// ErrNotCached is returned by the Cached* readers when no complete snapshot
// is stored.
var ErrNotCached = errors.New("no cached snapshot")

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore wraps a migrated preferences database (see client.InitDatabase).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo() preferences.Repository {
	return preferences.NewSQLiteRepository(s.db)
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, _, err := s.repo().Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetToken replaces the stored token. It is committed when SetToken returns.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo().Set(ctx, KeyToken, token)
}

// ClearToken forgets the token and keeps the cached snapshot.
func (s *Store) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo().Delete(ctx, KeyToken)
}

// Clear removes the token and every cached field.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo().Clear(ctx)
}

// CacheProfileFields stores each field under its own key in a single
// transaction. Values must be string or int.
func (s *Store) CacheProfileFields(ctx context.Context, fields map[string]any) error {
	values := make(map[string]string, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case string:
			values[k] = tv
		case int:
			values[k] = strconv.Itoa(tv)
		default:
			return fmt.Errorf("field %s: unsupported type %T", k, v)
		}
	}
	return s.setAll(ctx, values)
}

// SaveUser caches every profile field.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return s.setAll(ctx, map[string]string{
		KeyID:          strconv.Itoa(u.ID),
		KeyFirstName:   u.FirstName,
		KeyFamilyName:  u.FamilyName,
		KeyEmail:       u.Email,
		KeyAge:         strconv.Itoa(u.Age),
		KeyPhoneNumber: u.PhoneNumber,
		KeyPatientType: u.PatientType,
	})
}

// SaveMedicalRecord caches every medical-record field.
func (s *Store) SaveMedicalRecord(ctx context.Context, m *models.MedicalRecord) error {
	return s.setAll(ctx, map[string]string{
		KeyWeight:      m.Weight,
		KeyHeight:      m.Height,
		KeyBlood:       m.BloodType,
		KeyAllergies:   m.Allergies,
		KeyMaladies:    m.GeneralDiseases,
		KeyMedications: m.Medications,
		KeyAffection:   m.CongenitalConditions,
	})
}

// CachedUser rebuilds the profile from the cache. It fails with
// ErrNotCached unless every profile key is present.
func (s *Store) CachedUser(ctx context.Context) (*models.User, error) {
	v, err := s.getAll(ctx, userKeys)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(v[KeyID])
	if err != nil {
		return nil, fmt.Errorf("cached id: %w", err)
	}
	age, err := strconv.Atoi(v[KeyAge])
	if err != nil {
		return nil, fmt.Errorf("cached age: %w", err)
	}

	return &models.User{
		ID:          id,
		FirstName:   v[KeyFirstName],
		FamilyName:  v[KeyFamilyName],
		Email:       v[KeyEmail],
		Age:         age,
		PhoneNumber: v[KeyPhoneNumber],
		PatientType: v[KeyPatientType],
	}, nil
}

// CachedMedicalRecord rebuilds the medical record from the cache.
func (s *Store) CachedMedicalRecord(ctx context.Context) (*models.MedicalRecord, error) {
	v, err := s.getAll(ctx, medicalRecordKeys)
	if err != nil {
		return nil, err
	}
	return &models.MedicalRecord{
		Weight:               v[KeyWeight],
		Height:               v[KeyHeight],
		BloodType:            v[KeyBlood],
		Allergies:            v[KeyAllergies],
		GeneralDiseases:      v[KeyMaladies],
		Medications:          v[KeyMedications],
		CongenitalConditions: v[KeyAffection],
	}, nil
}

// cachedFields returns a raw copy of every stored key except the token.
func (s *Store) cachedFields(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo().List(ctx)
	if err != nil {
		return nil, err
	}
	delete(all, KeyToken)
	return all, nil
}

func (s *Store) setAll(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := preferences.NewSQLiteRepository(tx)
		for k, v := range values {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) getAll(ctx context.Context, keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repo()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := repo.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotCached
		}
		out[k] = v
	}
	return out, nil
}
