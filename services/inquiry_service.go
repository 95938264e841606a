package services

import (
	"context"
	"strings"
	"time"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// InquiryRepository is the storage the inquiry workflow runs against.
type InquiryRepository interface {
	FindAll(ctx context.Context) ([]*models.Inquiry, error)
	FindByID(ctx context.Context, id uint) (*models.Inquiry, error)
	Add(ctx context.Context, inquiry *models.Inquiry) error
	Delete(ctx context.Context, id uint) error
	UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string, at time.Time) (bool, error)
	CountByStatus(ctx context.Context) (map[models.InquiryStatus]int, error)
}

// InquiryActivityRepository stores the status history of inquiries.
type InquiryActivityRepository interface {
	Add(ctx context.Context, activity *models.InquiryActivity) error
	FindByInquiry(ctx context.Context, inquiryID uint) ([]*models.InquiryActivity, error)
	DeleteByInquiry(ctx context.Context, inquiryID uint) error
}

// InquiryService implements the inquiry workflow: listing with filter and
// search, status changes, statistics and deletion. Status transitions are
// permissive, any known status may follow any other.
type InquiryService struct {
	repo       InquiryRepository
	activities InquiryActivityRepository
	notifier   InquiryNotifier
	now        func() time.Time
	logger     zerolog.Logger
}

type InquiryServiceOption func(*InquiryService)

// WithNotifier sets who is told about newly submitted inquiries.
func WithNotifier(notifier InquiryNotifier) InquiryServiceOption {
	return func(s *InquiryService) {
		s.notifier = notifier
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) InquiryServiceOption {
	return func(s *InquiryService) {
		s.now = now
	}
}

func NewInquiryService(repo InquiryRepository, activities InquiryActivityRepository, opts ...InquiryServiceOption) *InquiryService {
	s := &InquiryService{
		repo:       repo,
		activities: activities,
		now:        time.Now,
		logger:     log.With().Str("serviceName", "inquiryService").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the inquiries matching filter and the search term, newest first.
func (s *InquiryService) List(ctx context.Context, filter models.StatusFilter, search string) ([]models.Inquiry, error) {
	if filter == "" {
		filter = models.FilterAll
	}
	if !filter.Valid() {
		return nil, errs.NewInvalidFieldError("status", "must be all, new, in-progress, completed or cancelled")
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "inquiries", err)
	}

	inquiries := make([]models.Inquiry, 0, len(rows))
	for _, row := range rows {
		inquiries = append(inquiries, *row)
	}
	return models.FilterInquiries(inquiries, filter, search), nil
}

func (s *InquiryService) Get(ctx context.Context, id uint) (*models.Inquiry, error) {
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "inquiry", err)
	}
	if inquiry == nil {
		return nil, errs.NewNotFound("inquiry")
	}
	return inquiry, nil
}

// Submit stores an inquiry from the public contact form. New inquiries always
// start in the new status without notes. Notification failures are logged and
// do not fail the submission.
func (s *InquiryService) Submit(ctx context.Context, inquiry *models.Inquiry) error {
	inquiry.CompanyName = strings.TrimSpace(inquiry.CompanyName)
	inquiry.ContactPerson = strings.TrimSpace(inquiry.ContactPerson)
	inquiry.Email = strings.TrimSpace(inquiry.Email)

	switch {
	case inquiry.CompanyName == "":
		return errs.NewMissingRequiredFieldError("company_name")
	case inquiry.ContactPerson == "":
		return errs.NewMissingRequiredFieldError("contact_person")
	case inquiry.Email == "":
		return errs.NewMissingRequiredFieldError("email")
	case !strings.Contains(inquiry.Email, "@"):
		return errs.NewInvalidFieldError("email", "must be an email address")
	}

	inquiry.ID = 0
	inquiry.Status = models.StatusNew
	inquiry.Notes = nil
	if inquiry.ProjectType == nil {
		inquiry.ProjectType = models.JSONList[string]{}
	}

	if err := s.repo.Add(ctx, inquiry); err != nil {
		return errs.NewDatabaseError("create", "inquiry", err)
	}

	s.recordActivity(ctx, inquiry.ID, "", models.StatusNew, datatypes.JSONMap{"source": "contact_form"})

	if s.notifier != nil {
		if err := s.notifier.NotifyNewInquiry(ctx, *inquiry); err != nil {
			s.logger.Warn().Err(err).Uint("inquiryID", inquiry.ID).Msg("new inquiry notification failed")
		}
	}
	return nil
}

// ChangeStatus moves an inquiry to status and stamps updated_at. Non-nil notes
// replace the stored notes. Setting the current status again only refreshes
// the timestamp.
func (s *InquiryService) ChangeStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string) (*models.Inquiry, error) {
	if !status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "must be new, in-progress, completed or cancelled")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	matched, err := s.repo.UpdateStatus(ctx, id, status, notes, s.now())
	if err != nil {
		return nil, errs.NewDatabaseError("update status of", "inquiry", err)
	}
	if !matched {
		return nil, errs.NewNotFound("inquiry")
	}

	s.recordActivity(ctx, id, current.Status, status, datatypes.JSONMap{"notes_changed": notes != nil})

	return s.Get(ctx, id)
}

// Stats summarises the inquiry counts per status.
func (s *InquiryService) Stats(ctx context.Context) (models.InquiryStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return models.InquiryStats{}, errs.NewDatabaseError("count", "inquiries", err)
	}

	stats := models.InquiryStats{
		New:        counts[models.StatusNew],
		InProgress: counts[models.StatusInProgress],
		Completed:  counts[models.StatusCompleted],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// Delete removes an inquiry and, best effort, its history.
func (s *InquiryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "inquiry", err)
	}
	if s.activities != nil {
		if err := s.activities.DeleteByInquiry(ctx, id); err != nil {
			s.logger.Warn().Err(err).Uint("inquiryID", id).Msg("failed to delete inquiry history")
		}
	}
	return nil
}

// History returns the status changes of one inquiry, oldest first.
func (s *InquiryService) History(ctx context.Context, id uint) ([]*models.InquiryActivity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.activities == nil {
		return []*models.InquiryActivity{}, nil
	}
	history, err := s.activities.FindByInquiry(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "inquiry activity", err)
	}
	return history, nil
}

func (s *InquiryService) recordActivity(ctx context.Context, inquiryID uint, from, to models.InquiryStatus, details datatypes.JSONMap) {
	if s.activities == nil {
		return
	}
	activity := &models.InquiryActivity{
		InquiryID:  inquiryID,
		FromStatus: from,
		ToStatus:   to,
		Details:    details,
		CreatedAt:  s.now(),
	}
	if err := s.activities.Add(ctx, activity); err != nil {
		s.logger.Warn().Err(err).Uint("inquiryID", inquiryID).Msg("failed to record inquiry activity")
	}
}
