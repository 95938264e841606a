// Package dashboard holds the admin back office state: the per-tab resource
// snapshot, the create/edit form and the inquiry board. All network access
// goes through the API interfaces, which *client.Client satisfies.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpupo63/studio-site-backend/client"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/prefs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ActiveTabKey is the preference key holding the selected tab.
const ActiveTabKey = "adminActiveTab"

// MaxImageBytes is the largest image the upload endpoint accepts, 5 MB.
const MaxImageBytes int64 = 5 * 1024 * 1024

var (
	// ErrCancelled is returned when the admin declines a confirmation prompt.
	ErrCancelled = errors.New("cancelled by user")
	// ErrImageTooLarge is returned before any upload is attempted.
	ErrImageTooLarge = fmt.Errorf("image exceeds %d MB", MaxImageBytes/(1024*1024))
)

type Uploader interface {
	Upload(ctx context.Context, filename string, image io.Reader) (string, error)
}

// API is the resource side of the site API.
type API interface {
	Uploader
	ListTeam(ctx context.Context) ([]models.TeamMember, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListSlides(ctx context.Context) ([]models.BannerSlide, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, rt models.ResourceType, payload any) (json.RawMessage, error)
	Update(ctx context.Context, rt models.ResourceType, id uint, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, rt models.ResourceType, id uint) error
}

// InquiryAPI is the admin side of the inquiry endpoints.
type InquiryAPI interface {
	ListInquiries(ctx context.Context, filter models.StatusFilter, search string) ([]models.Inquiry, error)
	ChangeInquiryStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string) (*models.Inquiry, error)
	DeleteInquiry(ctx context.Context, id uint) error
}

var (
	_ API             = (*client.Client)(nil)
	_ InquiryAPI      = (*client.Client)(nil)
	_ PreferenceStore = (*prefs.SQLiteStore)(nil)
	_ PreferenceStore = (*prefs.MemoryStore)(nil)
)

// PreferenceStore keeps UI preferences across sessions.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Confirmer asks the admin a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(message string) bool
}

type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Notifier surfaces outcomes to the admin.
type Notifier interface {
	Error(message string)
	Success(message string)
}

type logNotifier struct {
	logger zerolog.Logger
}

func (n logNotifier) Error(message string)   { n.logger.Error().Msg(message) }
func (n logNotifier) Success(message string) { n.logger.Info().Msg(message) }

type options struct {
	prefs   PreferenceStore
	confirm Confirmer
	notify  Notifier
	logger  zerolog.Logger
}

type Option func(*options)

func WithPreferences(store PreferenceStore) Option {
	return func(o *options) { o.prefs = store }
}

func WithConfirmer(c Confirmer) Option {
	return func(o *options) { o.confirm = c }
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notify = n }
}

func newOptions(component string, opts []Option) options {
	o := options{
		logger: log.With().Str("component", component).Logger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.prefs == nil {
		o.prefs = prefs.NewMemoryStore()
	}
	if o.confirm == nil {
		// without a prompt nothing destructive goes through
		o.confirm = ConfirmFunc(func(string) bool { return false })
	}
	if o.notify == nil {
		o.notify = logNotifier{logger: o.logger}
	}
	return o
}

// describe turns an error into the text shown to the admin.
func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusForbidden {
			return "forbidden, reload the page and try again"
		}
		if apiErr.Status == http.StatusUnauthorized {
			return "your session has expired, sign in again"
		}
		return apiErr.Message
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}
