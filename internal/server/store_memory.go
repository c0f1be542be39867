// store_memory.go - In-memory store implementations. They back the handler
// tests and favor clarity over performance.
package server

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryDonorStore keeps donors in a slice to preserve insertion order,
// matching the storage-order listing behavior of the SQL store.
type MemoryDonorStore struct {
	mu     sync.RWMutex
	donors []Donor
}

var _ DonorStore = (*MemoryDonorStore)(nil)

func NewMemoryDonorStore() *MemoryDonorStore {
	return &MemoryDonorStore{}
}

func (s *MemoryDonorStore) Create(_ context.Context, d *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donors = append(s.donors, *d)
	return nil
}

func (s *MemoryDonorStore) FindByID(_ context.Context, id string) (*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.donors {
		if s.donors[i].ID == id {
			d := s.donors[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryDonorStore) FindByNumber(_ context.Context, number string) (*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.donors {
		if s.donors[i].Mobile == number {
			d := s.donors[i]
			return &d, nil
		}
	}
	for i := range s.donors {
		if s.donors[i].WomenNumber == number && s.donors[i].WomenNumber != "" {
			d := s.donors[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryDonorStore) FindByMobile(_ context.Context, mobile string) (*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.donors {
		if s.donors[i].Mobile == mobile {
			d := s.donors[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryDonorStore) MobileExists(_ context.Context, mobile string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.donors {
		if s.donors[i].Mobile == mobile {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryDonorStore) All(_ context.Context) ([]Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Donor, len(s.donors))
	copy(out, s.donors)
	return out, nil
}

func (s *MemoryDonorStore) ByBloodGroup(_ context.Context, bloodGroup string) ([]Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Donor
	for i := range s.donors {
		if s.donors[i].BloodGroup == bloodGroup {
			out = append(out, s.donors[i])
		}
	}
	return out, nil
}

func (s *MemoryDonorStore) Update(_ context.Context, d *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.donors {
		if s.donors[i].ID == d.ID {
			s.donors[i] = *d
			return nil
		}
	}
	return ErrNotFound
}

// MemoryReferenceStore keeps reference records in insertion order.
type MemoryReferenceStore struct {
	mu      sync.RWMutex
	records []ReferenceRecord
}

var _ ReferenceStore = (*MemoryReferenceStore)(nil)

func NewMemoryReferenceStore() *MemoryReferenceStore {
	return &MemoryReferenceStore{}
}

func (s *MemoryReferenceStore) Create(_ context.Context, rec *ReferenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, cloneReference(rec))
	return nil
}

func (s *MemoryReferenceStore) All(_ context.Context) ([]ReferenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ReferenceRecord, 0, len(s.records))
	for i := range s.records {
		out = append(out, cloneReference(&s.records[i]))
	}
	return out, nil
}

func (s *MemoryReferenceStore) ByDistrictID(_ context.Context, districtID string) (*ReferenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		for _, d := range s.records[i].Districts {
			if d.ID == districtID {
				rec := cloneReference(&s.records[i])
				return &rec, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryReferenceStore) ByUpazillaDistrictID(_ context.Context, districtID string) (*ReferenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		for _, u := range s.records[i].Upazillas {
			if u.DistrictID == districtID {
				rec := cloneReference(&s.records[i])
				return &rec, nil
			}
		}
	}
	return nil, ErrNotFound
}

// cloneReference deep-copies a record so callers cannot mutate stored slices.
func cloneReference(rec *ReferenceRecord) ReferenceRecord {
	raw, _ := json.Marshal(rec)
	var out ReferenceRecord
	_ = json.Unmarshal(raw, &out)
	if out.Districts == nil {
		out.Districts = []District{}
	}
	if out.Upazillas == nil {
		out.Upazillas = []Upazilla{}
	}
	return out
}

// MemoryChatStore keeps board messages in insertion order.
type MemoryChatStore struct {
	mu   sync.RWMutex
	msgs []ChatMessage
}

var _ ChatStore = (*MemoryChatStore)(nil)

func NewMemoryChatStore() *MemoryChatStore {
	return &MemoryChatStore{}
}

func (s *MemoryChatStore) Create(_ context.Context, msg *ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, *msg)
	return nil
}

func (s *MemoryChatStore) All(_ context.Context) ([]ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out, nil
}
