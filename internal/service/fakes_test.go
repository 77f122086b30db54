package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/repo"
)

// memAccountRepo is an in-memory AccountRepo with a unique username index.
type memAccountRepo struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]dom.Account
	creates int
	err     error // returned by every call when set
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byID: map[int64]dom.Account{}}
}

func (r *memAccountRepo) Create(_ context.Context, a dom.Account) (dom.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Account{}, r.err
	}
	for _, existing := range r.byID {
		if existing.Username == a.Username {
			return dom.Account{}, repo.ErrUniqueViolation
		}
	}
	r.nextID++
	r.creates++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

func (r *memAccountRepo) GetByUsername(_ context.Context, username string) (dom.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Account{}, r.err
	}
	for _, a := range r.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return dom.Account{}, repo.ErrNoRows
}

func (r *memAccountRepo) GetByID(_ context.Context, id int64) (dom.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Account{}, r.err
	}
	a, ok := r.byID[id]
	if !ok {
		return dom.Account{}, repo.ErrNoRows
	}
	return a, nil
}

func (r *memAccountRepo) count(username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.byID {
		if a.Username == username {
			n++
		}
	}
	return n
}

// memMessageRepo is an in-memory MessageRepo.
type memMessageRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]dom.Message
	err    error
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{byID: map[int64]dom.Message{}}
}

func (r *memMessageRepo) Create(_ context.Context, m dom.Message) (dom.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Message{}, r.err
	}
	r.nextID++
	m.ID = r.nextID
	if m.PostedAt <= 0 {
		m.PostedAt = time.Now().Unix()
	}
	r.byID[m.ID] = m
	return m, nil
}

func (r *memMessageRepo) List(_ context.Context) ([]dom.Message, error) {
	return r.filter(func(dom.Message) bool { return true })
}

func (r *memMessageRepo) GetByID(_ context.Context, id int64) (dom.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Message{}, r.err
	}
	m, ok := r.byID[id]
	if !ok {
		return dom.Message{}, repo.ErrNoRows
	}
	return m, nil
}

func (r *memMessageRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *memMessageRepo) Update(_ context.Context, m dom.Message) (dom.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dom.Message{}, r.err
	}
	stored, ok := r.byID[m.ID]
	if !ok {
		return dom.Message{}, repo.ErrNoRows
	}
	stored.Text = m.Text
	r.byID[m.ID] = stored
	return stored, nil
}

func (r *memMessageRepo) ListByAuthor(_ context.Context, authorID int64) ([]dom.Message, error) {
	return r.filter(func(m dom.Message) bool { return m.AuthorID == authorID })
}

func (r *memMessageRepo) filter(keep func(dom.Message) bool) ([]dom.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []dom.Message
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMessageRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// racyAccountRepo hides existing accounts from GetByUsername, so only the
// unique index stops a duplicate.
type racyAccountRepo struct {
	*memAccountRepo
}

func (r racyAccountRepo) GetByUsername(context.Context, string) (dom.Account, error) {
	return dom.Account{}, repo.ErrNoRows
}
