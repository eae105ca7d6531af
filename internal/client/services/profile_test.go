package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medesi/portal/internal/client/client"
	"github.com/medesi/portal/internal/client/credentials"
	"github.com/medesi/portal/internal/client/models"
	"github.com/medesi/portal/internal/logging"
)

func waitUser(t *testing.T, ch <-chan *models.User) *models.User {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
		return nil
	}
}

func TestFetchUserInfo_NoTokenIsSynchronous(t *testing.T) {
	store, _ := newTestStore(t)
	fc := &fakeClient{}
	svc := NewProfileService(fc, store, logging.Nop())

	called := false
	svc.FetchUserInfo(context.Background(), func(u *models.User) {
		called = true
		assert.Nil(t, u)
	})
	assert.True(t, called, "callback must run before FetchUserInfo returns")
	assert.Zero(t, fc.calls.Load())

	called = false
	svc.FetchMedicalRecord(context.Background(), func(m *models.MedicalRecord) {
		called = true
		assert.Nil(t, m)
	})
	assert.True(t, called)
	assert.Zero(t, fc.calls.Load())
}

func TestFetchUserInfo_SuccessPersistsThenDelivers(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "abc123"))

	fc := &fakeClient{getMeFn: func(context.Context, string) (*models.User, error) {
		return sampleUser(), nil
	}}
	svc := NewProfileService(fc, store, logging.Nop())

	ch := make(chan *models.User, 1)
	var cachedAtCallback atomic.Pointer[models.User]
	svc.FetchUserInfo(ctx, func(u *models.User) {
		cached, err := store.CachedUser(ctx)
		if err == nil {
			cachedAtCallback.Store(cached)
		}
		ch <- u
	})

	got := waitUser(t, ch)
	require.NotNil(t, got)
	assert.Equal(t, "abc123", fc.lastToken.Load())

	if diff := cmp.Diff(sampleUser(), got); diff != "" {
		t.Errorf("delivered user mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleUser(), cachedAtCallback.Load()); diff != "" {
		t.Errorf("user must be cached before callback (-want +got):\n%s", diff)
	}

	assert.Equal(t, "7", storedValue(t, db, credentials.KeyID))
	assert.Equal(t, "21", storedValue(t, db, credentials.KeyAge))
	assert.Equal(t, "Amina", storedValue(t, db, credentials.KeyFirstName))
}

func TestFetchUserInfo_FailureDeliversNilAndKeepsCache(t *testing.T) {
	failures := []error{
		fmt.Errorf("%w: timeout", client.ErrUnavailable),
		&client.StatusError{Code: 500},
		fmt.Errorf("%w: missing age", client.ErrMalformedResponse),
	}

	for _, want := range failures {
		t.Run(want.Error(), func(t *testing.T) {
			store, _ := newTestStore(t)
			ctx := context.Background()
			require.NoError(t, store.SetToken(ctx, "abc123"))
			require.NoError(t, store.SaveUser(ctx, sampleUser()))

			fc := &fakeClient{getMeFn: func(context.Context, string) (*models.User, error) {
				return nil, want
			}}
			svc := NewProfileService(fc, store, logging.Nop())

			ch := make(chan *models.User, 1)
			svc.FetchUserInfo(ctx, func(u *models.User) { ch <- u })
			assert.Nil(t, waitUser(t, ch))

			cached, err := store.CachedUser(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleUser(), cached)

			tok, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "abc123", tok, "only an expired session drops the token")
		})
	}
}

func TestFetchUserInfo_AuthExpiredClearsTokenAndNotifies(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "stale"))

	fc := &fakeClient{getMeFn: func(context.Context, string) (*models.User, error) {
		return nil, fmt.Errorf("%w: %w", client.ErrAuthExpired, &client.StatusError{Code: 401})
	}}

	expired := make(chan struct{}, 1)
	svc := NewProfileService(fc, store, logging.Nop(), WithAuthExpiredHandler(func() {
		expired <- struct{}{}
	}))

	ch := make(chan *models.User, 1)
	svc.FetchUserInfo(ctx, func(u *models.User) { ch <- u })
	assert.Nil(t, waitUser(t, ch))

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("auth expired handler not called")
	}

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFetchMedicalRecord_SuccessPersists(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "abc123"))

	want := &models.MedicalRecord{
		Weight:               "none",
		Height:               "175",
		BloodType:            "A+",
		Allergies:            "none",
		GeneralDiseases:      "none",
		Medications:          "none",
		CongenitalConditions: "none",
	}
	fc := &fakeClient{medicalRecordFn: func(context.Context, string) (*models.MedicalRecord, error) {
		return want, nil
	}}
	svc := NewProfileService(fc, store, logging.Nop())

	ch := make(chan *models.MedicalRecord, 1)
	svc.FetchMedicalRecord(ctx, func(m *models.MedicalRecord) { ch <- m })

	select {
	case got := <-ch:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
	}

	cached, err := store.CachedMedicalRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, cached)
}

func TestUserInfo_NoToken(t *testing.T) {
	store, _ := newTestStore(t)
	fc := &fakeClient{}
	svc := NewProfileService(fc, store, logging.Nop())

	_, err := svc.UserInfo(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
	_, err = svc.MedicalRecord(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
	require.ErrorIs(t, svc.UpdateProfile(context.Background(), models.ProfileUpdate{}), ErrNoToken)
	assert.Zero(t, fc.calls.Load())
}

func TestUserInfo_Sync(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "abc123"))

	fc := &fakeClient{getMeFn: func(context.Context, string) (*models.User, error) {
		return sampleUser(), nil
	}}
	u, err := NewProfileService(fc, store, logging.Nop()).UserInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), u)

	cached, err := store.CachedUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), cached)
}

func TestUpdateProfile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "abc123"))
	require.NoError(t, store.SaveUser(ctx, sampleUser()))

	fc := &fakeClient{updateMeFn: func(context.Context, string, models.ProfileUpdate) error {
		return nil
	}}
	svc := NewProfileService(fc, store, logging.Nop())

	first, family := models.SplitFullName("Amina Ben Ali")
	update := models.ProfileUpdate{FirstName: first, FamilyName: family, PhoneNumber: "0555"}
	require.NoError(t, svc.UpdateProfile(ctx, update))
	assert.Equal(t, update, fc.lastProfileInput)

	cached, err := svc.CachedUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Amina", cached.FirstName)
	assert.Equal(t, "Ben Ali", cached.FamilyName)
	assert.Equal(t, "0555", cached.PhoneNumber)
	assert.Equal(t, "amina@example.com", cached.Email)
}

func TestUpdateProfile_FailureKeepsCache(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "abc123"))
	require.NoError(t, store.SaveUser(ctx, sampleUser()))

	fc := &fakeClient{updateMeFn: func(context.Context, string, models.ProfileUpdate) error {
		return &client.StatusError{Code: 422}
	}}
	svc := NewProfileService(fc, store, logging.Nop())

	err := svc.UpdateProfile(ctx, models.ProfileUpdate{FirstName: "X", FamilyName: "Y", PhoneNumber: "1"})
	require.Error(t, err)

	cached, err := svc.CachedUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), cached)
}
