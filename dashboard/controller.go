package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the last successfully fetched state of every tab.
type Snapshot struct {
	Team       []models.TeamMember
	Projects   []models.Project
	Slides     []models.BannerSlide
	Categories []models.Category
}

// Len returns the number of rows loaded for a tab.
func (s Snapshot) Len(rt models.ResourceType) int {
	switch rt {
	case models.ResourceTeam:
		return len(s.Team)
	case models.ResourceProjects:
		return len(s.Projects)
	case models.ResourceSlides:
		return len(s.Slides)
	case models.ResourceCategories:
		return len(s.Categories)
	}
	return 0
}

// Controller owns the admin's resource snapshot. Every mutation is followed by
// a full refetch; the snapshot is only ever replaced wholesale.
type Controller struct {
	api     API
	prefs   PreferenceStore
	confirm Confirmer
	notify  Notifier
	logger  zerolog.Logger

	mu        sync.RWMutex
	snapshot  Snapshot
	loadErr   error
	activeTab models.ResourceType
}

// NewController reads the saved tab. It does not fetch; call FetchAll.
func NewController(ctx context.Context, api API, opts ...Option) *Controller {
	o := newOptions("dashboard", opts)
	c := &Controller{
		api:       api,
		prefs:     o.prefs,
		confirm:   o.confirm,
		notify:    o.notify,
		logger:    o.logger,
		activeTab: models.ResourceTeam,
	}

	saved, ok, err := c.prefs.Get(ctx, ActiveTabKey)
	switch {
	case err != nil:
		c.logger.Warn().Err(err).Msg("could not read saved tab")
	case ok:
		if rt, err := models.ParseResourceType(saved); err == nil {
			c.activeTab = rt
		}
	}
	return c
}

func (c *Controller) ActiveTab() models.ResourceType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeTab
}

// SetTab switches tabs and saves the choice. A failed save keeps the switch.
func (c *Controller) SetTab(ctx context.Context, rt models.ResourceType) error {
	if !rt.Valid() {
		return fmt.Errorf("unknown resource type %q", rt)
	}
	c.mu.Lock()
	c.activeTab = rt
	c.mu.Unlock()

	if err := c.prefs.Set(ctx, ActiveTabKey, string(rt)); err != nil {
		c.logger.Warn().Err(err).Str("tab", string(rt)).Msg("could not save tab")
	}
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// LoadError is the error of the last failed FetchAll, cleared by a successful one.
func (c *Controller) LoadError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// FetchAll loads the four collections in parallel. The first failure cancels
// the rest and the previous snapshot stays in place.
func (c *Controller) FetchAll(ctx context.Context) error {
	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		team, err := c.api.ListTeam(gctx)
		if err != nil {
			return fmt.Errorf("loading team: %w", err)
		}
		next.Team = team
		return nil
	})
	g.Go(func() error {
		projects, err := c.api.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}
		next.Projects = projects
		return nil
	})
	g.Go(func() error {
		slides, err := c.api.ListSlides(gctx)
		if err != nil {
			return fmt.Errorf("loading slides: %w", err)
		}
		next.Slides = slides
		return nil
	})
	g.Go(func() error {
		categories, err := c.api.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("loading categories: %w", err)
		}
		next.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		c.mu.Lock()
		c.loadErr = err
		c.mu.Unlock()
		c.logger.Error().Err(err).Msg("failed to load dashboard data")
		c.notify.Error("Failed to load data: " + describe(err))
		return err
	}

	c.mu.Lock()
	c.snapshot = next
	c.loadErr = nil
	c.mu.Unlock()
	return nil
}

func (c *Controller) Create(ctx context.Context, rt models.ResourceType, payload Payload) error {
	v, err := VariantFor(rt)
	if err != nil {
		return err
	}
	if _, err := c.api.Create(ctx, rt, payload); err != nil {
		c.notify.Error(fmt.Sprintf("Failed to create %s: %s", v.Label, describe(err)))
		return err
	}
	c.notify.Success(capitalize(v.Label) + " created")
	return c.FetchAll(ctx)
}

func (c *Controller) Update(ctx context.Context, rt models.ResourceType, id uint, payload Payload) error {
	v, err := VariantFor(rt)
	if err != nil {
		return err
	}
	if _, err := c.api.Update(ctx, rt, id, payload); err != nil {
		c.notify.Error(fmt.Sprintf("Failed to update %s: %s", v.Label, describe(err)))
		return err
	}
	c.notify.Success(capitalize(v.Label) + " updated")
	return c.FetchAll(ctx)
}

// Delete asks for confirmation first. Declining returns ErrCancelled without
// calling the API.
func (c *Controller) Delete(ctx context.Context, rt models.ResourceType, id uint) error {
	v, err := VariantFor(rt)
	if err != nil {
		return err
	}
	if !c.confirm.Confirm(fmt.Sprintf("Are you sure you want to delete this %s?", v.Label)) {
		return ErrCancelled
	}
	if err := c.api.Delete(ctx, rt, id); err != nil {
		c.notify.Error(fmt.Sprintf("Failed to delete %s: %s", v.Label, describe(err)))
		return err
	}
	c.notify.Success(capitalize(v.Label) + " deleted")
	return c.FetchAll(ctx)
}

// Submit validates the form and sends it as a create or an update.
func (c *Controller) Submit(ctx context.Context, f *Form) error {
	payload, err := f.Prepared()
	if err != nil {
		c.notify.Error(describe(err))
		return err
	}
	if f.Mode == ModeEdit {
		return c.Update(ctx, f.Type(), f.ID, payload)
	}
	return c.Create(ctx, f.Type(), payload)
}

// UploadImage uploads into one of the form's image fields, reporting a
// failure once. The field keeps its old value on failure.
func (c *Controller) UploadImage(ctx context.Context, f *Form, field, filename string, size int64, image io.Reader) error {
	if err := f.UploadImage(ctx, field, filename, size, image); err != nil {
		c.notify.Error("Failed to upload image: " + describe(err))
		return err
	}
	c.notify.Success("Image uploaded")
	return nil
}

// OpenCreate starts a blank form for a tab.
func (c *Controller) OpenCreate(rt models.ResourceType) (*Form, error) {
	return NewCreateForm(rt, c.api)
}

// OpenEdit starts a form from the row with id in the current snapshot.
func (c *Controller) OpenEdit(rt models.ResourceType, id uint) (*Form, error) {
	snap := c.Snapshot()

	var record any
	switch rt {
	case models.ResourceTeam:
		record = findByID(snap.Team, id, func(m models.TeamMember) uint { return m.ID })
	case models.ResourceProjects:
		record = findByID(snap.Projects, id, func(p models.Project) uint { return p.ID })
	case models.ResourceSlides:
		record = findByID(snap.Slides, id, func(s models.BannerSlide) uint { return s.ID })
	case models.ResourceCategories:
		record = findByID(snap.Categories, id, func(cat models.Category) uint { return cat.ID })
	default:
		return nil, fmt.Errorf("unknown resource type %q", rt)
	}
	if record == nil {
		return nil, errNotLoaded(rt, id)
	}
	return NewEditForm(rt, id, record, c.api)
}

func findByID[T any](items []T, id uint, idOf func(T) uint) any {
	for _, item := range items {
		if idOf(item) == id {
			return item
		}
	}
	return nil
}

var errRowNotLoaded = errors.New("row not in snapshot")

func errNotLoaded(rt models.ResourceType, id uint) error {
	return fmt.Errorf("%s %d: %w", rt, id, errRowNotLoaded)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
