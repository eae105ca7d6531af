package services

import (
	"context"
	"errors"

	"github.com/medesi/portal/internal/client/client"
	"github.com/medesi/portal/internal/client/credentials"
	"github.com/medesi/portal/internal/client/models"
	"github.com/medesi/portal/internal/logging"
)

// ProfileService fetches, caches and edits the patient's data.
//
// FetchUserInfo and FetchMedicalRecord are fire-and-forget: callback is
// called exactly once, with nil on any failure. When no token is stored the
// callback runs synchronously and no request is made; otherwise it runs on
// another goroutine. The user profile is accepted only when complete, while
// medical-record fields default individually to "none".
//
// Whenever an authenticated call reports client.ErrAuthExpired the stored
// token is dropped and the handler given with WithAuthExpiredHandler runs.
type ProfileService interface {
	FetchUserInfo(ctx context.Context, callback func(*models.User))
	FetchMedicalRecord(ctx context.Context, callback func(*models.MedicalRecord))

	UserInfo(ctx context.Context) (*models.User, error)
	MedicalRecord(ctx context.Context) (*models.MedicalRecord, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error

	CachedUser(ctx context.Context) (*models.User, error)
	CachedMedicalRecord(ctx context.Context) (*models.MedicalRecord, error)
}

type ProfileOption func(*profileService)

// WithAuthExpiredHandler registers fn to run after an expired session has
// been cleared. fn may run on any goroutine.
func WithAuthExpiredHandler(fn func()) ProfileOption {
	return func(s *profileService) { s.onAuthExpired = fn }
}

type profileService struct {
	client        client.Client
	store         CredentialStore
	logger        logging.Logger
	onAuthExpired func()
}

func NewProfileService(c client.Client, store CredentialStore, logger logging.Logger, opts ...ProfileOption) ProfileService {
	s := &profileService{client: c, store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *profileService) FetchUserInfo(ctx context.Context, callback func(*models.User)) {
	token, err := s.token(ctx)
	if err != nil {
		callback(nil)
		return
	}

	s.client.GetMeAsync(ctx, token, func(u *models.User, err error) {
		if err != nil {
			s.failed(ctx, "fetch user info", err)
			callback(nil)
			return
		}
		s.cacheUser(ctx, u)
		callback(u)
	})
}

func (s *profileService) FetchMedicalRecord(ctx context.Context, callback func(*models.MedicalRecord)) {
	token, err := s.token(ctx)
	if err != nil {
		callback(nil)
		return
	}

	s.client.GetMedicalRecordAsync(ctx, token, func(m *models.MedicalRecord, err error) {
		if err != nil {
			s.failed(ctx, "fetch medical record", err)
			callback(nil)
			return
		}
		s.cacheMedicalRecord(ctx, m)
		callback(m)
	})
}

func (s *profileService) UserInfo(ctx context.Context) (*models.User, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.client.GetMe(ctx, token)
	if err != nil {
		s.failed(ctx, "fetch user info", err)
		return nil, err
	}
	s.cacheUser(ctx, u)
	return u, nil
}

func (s *profileService) MedicalRecord(ctx context.Context) (*models.MedicalRecord, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	m, err := s.client.GetMedicalRecord(ctx, token)
	if err != nil {
		s.failed(ctx, "fetch medical record", err)
		return nil, err
	}
	s.cacheMedicalRecord(ctx, m)
	return m, nil
}

// UpdateProfile submits the edit and, once the server accepts it, refreshes
// the cached name and phone fields.
func (s *profileService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	token, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.client.UpdateMe(ctx, token, update); err != nil {
		s.failed(ctx, "update profile", err)
		return err
	}

	err = s.store.CacheProfileFields(ctx, map[string]any{
		credentials.KeyFirstName:   update.FirstName,
		credentials.KeyFamilyName:  update.FamilyName,
		credentials.KeyPhoneNumber: update.PhoneNumber,
	})
	if err != nil {
		s.logger.Warn(ctx, "caching updated profile failed", "error", err)
	}
	return nil
}

func (s *profileService) CachedUser(ctx context.Context) (*models.User, error) {
	return s.store.CachedUser(ctx)
}

func (s *profileService) CachedMedicalRecord(ctx context.Context) (*models.MedicalRecord, error) {
	return s.store.CachedMedicalRecord(ctx)
}

func (s *profileService) token(ctx context.Context) (string, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		s.logger.Warn(ctx, "reading token failed", "error", err)
		return "", err
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *profileService) failed(ctx context.Context, op string, err error) {
	s.logger.Warn(ctx, op+" failed", "error", err)

	if !errors.Is(err, client.ErrAuthExpired) {
		return
	}
	if cerr := s.store.ClearToken(context.WithoutCancel(ctx)); cerr != nil {
		s.logger.Error(ctx, "clearing expired token failed", "error", cerr)
	}
	if s.onAuthExpired != nil {
		s.onAuthExpired()
	}
}

// A failed cache write does not invalidate a fetched record; it is logged
// and the caller still receives the value.
func (s *profileService) cacheUser(ctx context.Context, u *models.User) {
	if err := s.store.SaveUser(ctx, u); err != nil {
		s.logger.Warn(ctx, "caching user failed", "error", err)
	}
}

func (s *profileService) cacheMedicalRecord(ctx context.Context, m *models.MedicalRecord) {
	if err := s.store.SaveMedicalRecord(ctx, m); err != nil {
		s.logger.Warn(ctx, "caching medical record failed", "error", err)
	}
}
