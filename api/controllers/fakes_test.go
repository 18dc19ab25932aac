package controllers

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/storage"
)

// fakeRegistrationStorage reproduces the store's write-time uniqueness
// semantics in memory: guard keys claimed atomically under one mutex,
// so concurrent Create calls race exactly like conditional writes do.
type fakeRegistrationStorage struct {
	mu     sync.Mutex
	regs   []*storage.Registration
	guards map[string]bool

	receiptAlwaysExists bool
}

func newFakeRegistrationStorage() *fakeRegistrationStorage {
	return &fakeRegistrationStorage{guards: map[string]bool{}}
}

func (s *fakeRegistrationStorage) Create(_ context.Context, reg *storage.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type guard struct {
		key  string
		kind storage.ConflictKind
		val  string
	}
	guards := []guard{{key: "RECEIPT#" + reg.ReceiptID, kind: storage.ConflictReceipt, val: reg.ReceiptID}}
	for _, p := range reg.Phones() {
		guards = append(guards, guard{key: fmt.Sprintf("PHONE#%s#%s", reg.EventName, p), kind: storage.ConflictPhone, val: p})
	}
	for _, r := range reg.Rolls() {
		guards = append(guards, guard{key: fmt.Sprintf("ROLL#%s#%s", reg.EventName, r), kind: storage.ConflictRoll, val: r})
	}

	for _, g := range guards {
		if s.guards[g.key] {
			return &storage.ConflictError{Kind: g.kind, Value: g.val}
		}
	}
	for _, g := range guards {
		s.guards[g.key] = true
	}
	s.regs = append(s.regs, reg)
	return nil
}

func (s *fakeRegistrationStorage) GetByEvent(_ context.Context, eventName string) ([]*storage.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*storage.Registration
	for _, r := range s.regs {
		if r.EventName == eventName {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeRegistrationStorage) GetByReceipt(_ context.Context, eventName, receiptID string) (*storage.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.regs {
		if r.EventName == eventName && r.ReceiptID == receiptID {
			return r, nil
		}
	}
	return nil, storage.ErrRegistrationNotFound
}

func (s *fakeRegistrationStorage) CountByDevice(_ context.Context, fingerprint string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.regs {
		if r.DeviceFingerprint == fingerprint {
			count++
		}
	}
	return count, nil
}

func (s *fakeRegistrationStorage) ReceiptExists(_ context.Context, receiptID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receiptAlwaysExists {
		return true, nil
	}
	return s.guards["RECEIPT#"+receiptID], nil
}

// fakeLockStorage mirrors the conditional flip: the mutex stands in for
// the store's atomicity, claims after the first always lose.
type fakeLockStorage struct {
	mu    sync.Mutex
	locks map[string]*storage.ExportLock
}

func newFakeLockStorage() *fakeLockStorage {
	return &fakeLockStorage{locks: map[string]*storage.ExportLock{}}
}

func (s *fakeLockStorage) EnsureCreated(_ context.Context, eventName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locks[eventName]; !ok {
		s.locks[eventName] = &storage.ExportLock{EventName: eventName}
	}
	return nil
}

func (s *fakeLockStorage) Claim(_ context.Context, eventName, coordinatorName string, now time.Time) (*storage.ExportLock, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[eventName]
	if !ok || lock.Exported {
		return nil, false, nil
	}
	lock.Exported = true
	lock.FirstDownloaderName = coordinatorName
	lock.DownloadTime = now
	copied := *lock
	return &copied, true, nil
}

func (s *fakeLockStorage) Get(_ context.Context, eventName string) (*storage.ExportLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[eventName]
	if !ok {
		return nil, storage.ErrLockNotFound
	}
	copied := *lock
	return &copied, nil
}

type stubVerifier struct {
	ok bool
}

func (v stubVerifier) Verify(context.Context, string) bool {
	return v.ok
}

type fakeUploadStore struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (s *fakeUploadStore) Save(file *multipart.FileHeader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	path := "uploads/receipt-" + file.Filename
	s.saved = append(s.saved, path)
	return path, nil
}
