package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rpupo63/studio-site-backend/models"
)

// memStore is an in-memory resourceStore keyed by id.
type memStore[T any] struct {
	mu     sync.Mutex
	rows   map[uint]T
	nextID uint
	getID  func(*T) uint
	setID  func(*T, uint)
	// check runs before every write, mimicking constraint failures
	check func(rows map[uint]T, row *T) error
}

func newMemStore[T any](getID func(*T) uint, setID func(*T, uint)) *memStore[T] {
	return &memStore[T]{rows: map[uint]T{}, getID: getID, setID: setID}
}

func (s *memStore[T]) FindAll(ctx context.Context) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		row := s.rows[id]
		out = append(out, &row)
	}
	return out, nil
}

func (s *memStore[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *memStore[T]) Add(ctx context.Context, row *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.check != nil {
		if err := s.check(s.rows, row); err != nil {
			return err
		}
	}
	s.nextID++
	s.setID(row, s.nextID)
	s.rows[s.nextID] = *row
	return nil
}

func (s *memStore[T]) Update(ctx context.Context, row *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.check != nil {
		if err := s.check(s.rows, row); err != nil {
			return err
		}
	}
	s.rows[s.getID(row)] = *row
	return nil
}

func (s *memStore[T]) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

type memSettings struct {
	saved *models.SiteSettings
}

func (m *memSettings) GetOrCreate(ctx context.Context) (*models.SiteSettings, error) {
	if m.saved == nil {
		defaults := models.DefaultSiteSettings()
		m.saved = &defaults
	}
	copied := *m.saved
	return &copied, nil
}

func (m *memSettings) Save(ctx context.Context, settings *models.SiteSettings) error {
	settings.ID = models.SiteSettingsID
	copied := *settings
	m.saved = &copied
	return nil
}

type memInquiryRepo struct {
	mu     sync.Mutex
	rows   map[uint]models.Inquiry
	nextID uint
}

func newMemInquiryRepo(seed ...models.Inquiry) *memInquiryRepo {
	repo := &memInquiryRepo{rows: map[uint]models.Inquiry{}}
	for _, inquiry := range seed {
		repo.nextID++
		inquiry.ID = repo.nextID
		repo.rows[inquiry.ID] = inquiry
	}
	return repo
}

func (r *memInquiryRepo) FindAll(ctx context.Context) ([]*models.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Inquiry, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		out = append(out, &row)
	}
	return out, nil
}

func (r *memInquiryRepo) FindByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *memInquiryRepo) Add(ctx context.Context, inquiry *models.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inquiry.ID = r.nextID
	inquiry.CreatedAt = time.Now()
	inquiry.UpdatedAt = inquiry.CreatedAt
	r.rows[inquiry.ID] = *inquiry
	return nil
}

func (r *memInquiryRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memInquiryRepo) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	row.Status = status
	if notes != nil {
		n := *notes
		row.Notes = &n
	}
	row.UpdatedAt = at
	r.rows[id] = row
	return true, nil
}

func (r *memInquiryRepo) CountByStatus(ctx context.Context) (map[models.InquiryStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[models.InquiryStatus]int{}
	for _, row := range r.rows {
		counts[row.Status]++
	}
	return counts, nil
}

type memActivityRepo struct {
	mu   sync.Mutex
	rows []models.InquiryActivity
}

func (r *memActivityRepo) Add(ctx context.Context, activity *models.InquiryActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity.ID = uint(len(r.rows) + 1)
	r.rows = append(r.rows, *activity)
	return nil
}

func (r *memActivityRepo) FindByInquiry(ctx context.Context, inquiryID uint) ([]*models.InquiryActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.InquiryActivity
	for _, row := range r.rows {
		if row.InquiryID == inquiryID {
			row := row
			out = append(out, &row)
		}
	}
	return out, nil
}

func (r *memActivityRepo) DeleteByInquiry(ctx context.Context, inquiryID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.InquiryID != inquiryID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}

var errUniqueSlug = errors.New("UNIQUE constraint failed: categories.slug")

// uniqueSlug rejects a category whose slug another row already uses
func uniqueSlug(rows map[uint]models.Category, row *models.Category) error {
	for id, existing := range rows {
		if existing.Slug == row.Slug && id != row.ID {
			return errUniqueSlug
		}
	}
	return nil
}
