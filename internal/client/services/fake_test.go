package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medesi/portal/internal/client/client"
	"github.com/medesi/portal/internal/client/credentials"
	"github.com/medesi/portal/internal/client/models"
)

type fakeClient struct {
	calls atomic.Int32

	loginFn          func(ctx context.Context, email, password string) (string, error)
	forgotFn         func(ctx context.Context, email string) error
	getMeFn          func(ctx context.Context, token string) (*models.User, error)
	updateMeFn       func(ctx context.Context, token string, u models.ProfileUpdate) error
	medicalRecordFn  func(ctx context.Context, token string) (*models.MedicalRecord, error)
	lastToken        atomic.Value
	lastProfileInput models.ProfileUpdate
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.calls.Add(1)
	return f.loginFn(ctx, email, password)
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) error {
	f.calls.Add(1)
	return f.forgotFn(ctx, email)
}

func (f *fakeClient) GetMe(ctx context.Context, token string) (*models.User, error) {
	f.calls.Add(1)
	f.lastToken.Store(token)
	return f.getMeFn(ctx, token)
}

func (f *fakeClient) GetMeAsync(ctx context.Context, token string, done func(*models.User, error)) {
	go done(f.GetMe(ctx, token))
}

func (f *fakeClient) UpdateMe(ctx context.Context, token string, u models.ProfileUpdate) error {
	f.calls.Add(1)
	f.lastToken.Store(token)
	f.lastProfileInput = u
	return f.updateMeFn(ctx, token, u)
}

func (f *fakeClient) GetMedicalRecord(ctx context.Context, token string) (*models.MedicalRecord, error) {
	f.calls.Add(1)
	f.lastToken.Store(token)
	return f.medicalRecordFn(ctx, token)
}

func (f *fakeClient) GetMedicalRecordAsync(ctx context.Context, token string, done func(*models.MedicalRecord, error)) {
	go done(f.GetMedicalRecord(ctx, token))
}

func newTestStore(t *testing.T) (*credentials.Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return credentials.NewStore(db), db
}

// storedValue reads a raw preference row, "" when absent.
func storedValue(t *testing.T, db *sql.DB, key string) string {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM user_prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return v
}

func sampleUser() *models.User {
	return &models.User{
		ID:          7,
		FirstName:   "Amina",
		FamilyName:  "Benali",
		Email:       "amina@example.com",
		Age:         21,
		PhoneNumber: "+213555000111",
		PatientType: "student",
	}
}
