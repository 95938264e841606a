package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/rpupo63/studio-site-backend/client"
	"github.com/rpupo63/studio-site-backend/models"
)

type call struct {
	Method  string
	Type    models.ResourceType
	ID      uint
	Payload any
}

type fakeAPI struct {
	mu sync.Mutex

	team       []models.TeamMember
	projects   []models.Project
	slides     []models.BannerSlide
	categories []models.Category

	listErr   map[models.ResourceType]error
	createErr error
	updateErr error
	deleteErr error
	uploadURL string
	uploadErr error

	lists   int
	calls   []call
	uploads []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		team:       []models.TeamMember{{ID: 1, Name: "Ana", Skills: models.JSONList[models.Skill]{{Name: "Go", Rating: 5}}}},
		projects:   []models.Project{{ID: 1, Title: "Rebrand"}},
		slides:     []models.BannerSlide{{ID: 1, Title: "Welcome"}},
		categories: []models.Category{{ID: 1, Name: "Web Design", Slug: "web-design"}},
		listErr:    map[models.ResourceType]error{},
	}
}

func (f *fakeAPI) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) mutations() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeAPI) listed(rt models.ResourceType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return f.listErr[rt]
}

func (f *fakeAPI) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	if err := f.listed(models.ResourceTeam); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.TeamMember(nil), f.team...), nil
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	if err := f.listed(models.ResourceProjects); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeAPI) ListSlides(ctx context.Context) ([]models.BannerSlide, error) {
	if err := f.listed(models.ResourceSlides); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.BannerSlide(nil), f.slides...), nil
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := f.listed(models.ResourceCategories); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeAPI) Create(ctx context.Context, rt models.ResourceType, payload any) (json.RawMessage, error) {
	f.record(call{Method: "create", Type: rt, Payload: payload})
	if f.createErr != nil {
		return nil, f.createErr
	}
	if rt == models.ResourceSlides {
		f.mu.Lock()
		f.slides = append(f.slides, models.BannerSlide{ID: uint(len(f.slides) + 1), Title: payload.(Payload).String("title")})
		f.mu.Unlock()
	}
	return json.RawMessage(`{"id":99}`), nil
}

func (f *fakeAPI) Update(ctx context.Context, rt models.ResourceType, id uint, payload any) (json.RawMessage, error) {
	f.record(call{Method: "update", Type: rt, ID: id, Payload: payload})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) Delete(ctx context.Context, rt models.ResourceType, id uint) error {
	f.record(call{Method: "delete", Type: rt, ID: id})
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if rt == models.ResourceProjects {
		f.mu.Lock()
		f.projects = nil
		f.mu.Unlock()
	}
	return nil
}

func (f *fakeAPI) Upload(ctx context.Context, filename string, image io.Reader) (string, error) {
	f.mu.Lock()
	f.uploads = append(f.uploads, filename)
	f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	_, _ = io.Copy(io.Discard, image)
	return f.uploadURL, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

type countingConfirmer struct {
	answer bool
	asked  []string
}

func (c *countingConfirmer) Confirm(message string) bool {
	c.asked = append(c.asked, message)
	return c.answer
}

type fakeInquiryAPI struct {
	inquiries []models.Inquiry
	listErr   error
	changeErr error
	deleteErr error
	// serverNotes is what the server reports back, regardless of the request
	serverNotes *string
	// emptyReply makes ChangeInquiryStatus succeed without a record
	emptyReply bool

	changes []uint
	deletes []uint
}

func (f *fakeInquiryAPI) ListInquiries(ctx context.Context, filter models.StatusFilter, search string) ([]models.Inquiry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Inquiry(nil), f.inquiries...), nil
}

func (f *fakeInquiryAPI) ChangeInquiryStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string) (*models.Inquiry, error) {
	f.changes = append(f.changes, id)
	if f.changeErr != nil {
		return nil, f.changeErr
	}
	if f.emptyReply {
		return nil, nil
	}
	for _, inq := range f.inquiries {
		if inq.ID == id {
			inq.Status = status
			if notes != nil {
				inq.Notes = notes
			}
			if f.serverNotes != nil {
				inq.Notes = f.serverNotes
			}
			return &inq, nil
		}
	}
	return nil, &client.APIError{Status: http.StatusNotFound, Message: "inquiry not found"}
}

func (f *fakeInquiryAPI) DeleteInquiry(ctx context.Context, id uint) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}
