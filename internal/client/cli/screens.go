package cli

import (
	"context"
	"os"

	"github.com/medesi/portal/internal/client/async"
	"github.com/medesi/portal/internal/client/models"
)

// snapshot is what a screen renders. Offline marks values read from the
// local cache after a failed fetch.
type snapshot struct {
	user    *models.User
	record  *models.MedicalRecord
	offline bool
}

// refresh starts the requested fetches and waits for their callbacks on the
// calling goroutine. Callbacks are bound to a scope closed on return, so a
// late result after ctx is cancelled is dropped.
func (a *App) refresh(ctx context.Context, wantUser, wantRecord bool) snapshot {
	scope := async.NewScope(ctx)
	defer scope.Close()

	ui := make(chan func(*snapshot), 2)
	pending := 0

	if wantUser {
		pending++
		a.profileService.FetchUserInfo(scope.Context(), async.Bind(scope, func(u *models.User) {
			ui <- func(s *snapshot) { s.user = u }
		}))
	}
	if wantRecord {
		pending++
		a.profileService.FetchMedicalRecord(scope.Context(), async.Bind(scope, func(m *models.MedicalRecord) {
			ui <- func(s *snapshot) { s.record = m }
		}))
	}

	var s snapshot
	for ; pending > 0; pending-- {
		select {
		case apply := <-ui:
			apply(&s)
		case <-ctx.Done():
			return s
		}
	}

	if a.expired.Load() {
		return s
	}
	if wantUser && s.user == nil {
		if u, err := a.profileService.CachedUser(ctx); err == nil {
			s.user, s.offline = u, true
		}
	}
	if wantRecord && s.record == nil {
		if m, err := a.profileService.CachedMedicalRecord(ctx); err == nil {
			s.record, s.offline = m, true
		}
	}
	return s
}

// Home prints the greeting, the week strip and the day's consultations.
func (a *App) Home(ctx context.Context) error {
	s := a.refresh(ctx, true, false)

	printlnFn(greeting(s.user))
	printlnFn(weekStrip(nowFn()))
	printlnFn("Incoming consultations:")
	for _, c := range models.DefaultAgenda() {
		printlnFn(formatConsultation(c))
	}
	a.offlineNotice(s)
	return nil
}

// Profile prints the patient profile.
func (a *App) Profile(ctx context.Context) error {
	s := a.refresh(ctx, true, false)
	for _, row := range profileRows(s.user) {
		printlnFn(formatRow(row))
	}
	a.offlineNotice(s)
	return nil
}

// Record prints the medical record, or a notice when none is available.
func (a *App) Record(ctx context.Context) error {
	s := a.refresh(ctx, false, true)
	if s.record == nil {
		printlnFn("Medical record unavailable")
		return nil
	}
	for _, row := range s.record.Rows() {
		printlnFn(formatRow(row))
	}
	a.offlineNotice(s)
	return nil
}

// Edit prompts for a new full name and phone number, prefilled with the
// current values, and submits them.
func (a *App) Edit(ctx context.Context) error {
	s := a.refresh(ctx, true, false)

	var currentName, currentPhone string
	if s.user != nil {
		currentName, currentPhone = s.user.FullName(), s.user.PhoneNumber
	}

	fullName, err := getTextWithDefault(a.reader, "Full name", currentName, os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getTextWithDefault(a.reader, "Phone number", currentPhone, os.Stdout)
	if err != nil {
		return err
	}

	first, family := models.SplitFullName(fullName)
	err = a.profileService.UpdateProfile(ctx, models.ProfileUpdate{
		FirstName:   first,
		FamilyName:  family,
		PhoneNumber: phone,
	})
	printlnFn(updateNotice(err))
	return err
}

func (a *App) offlineNotice(s snapshot) {
	if s.offline {
		printlnFn("(offline: showing cached data)")
	}
}
