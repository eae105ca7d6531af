package patients

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medesi/portal/internal/common"
)

// MemoryRepository keeps patients in process memory. Emails are matched
// case-insensitively. Returned values are copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*Patient
	byEmail map[string]string
	seq     int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*Patient),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(ctx context.Context, patient *Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(patient.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrAlreadyExists
	}

	p := *patient
	p.ID = uuid.NewString()
	r.seq++
	p.Number = r.seq
	p.CreatedAt = time.Now()

	r.byID[p.ID] = &p
	r.byEmail[key] = p.ID

	out := p
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	p.FirstName = update.FirstName
	p.FamilyName = update.FamilyName
	p.PhoneNumber = update.PhoneNumber

	out := *p
	return &out, nil
}
