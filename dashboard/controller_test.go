package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/rpupo63/studio-site-backend/client"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, api *fakeAPI, opts ...Option) (*Controller, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	c := NewController(context.Background(), api, append([]Option{WithNotifier(notifier)}, opts...)...)
	require.NoError(t, c.FetchAll(context.Background()))
	return c, notifier
}

func TestFetchAllLoadsEveryTab(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)

	snap := c.Snapshot()
	assert.Len(t, snap.Team, 1)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Slides, 1)
	assert.Len(t, snap.Categories, 1)
	assert.Equal(t, 4, api.listCount())
	assert.NoError(t, c.LoadError())
	assert.Empty(t, notifier.errors)
}

func TestFetchAllFailureKeepsSnapshot(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)
	before := c.Snapshot()

	api.mu.Lock()
	api.team = append(api.team, models.TeamMember{ID: 2, Name: "Bo"})
	api.listErr[models.ResourceSlides] = &client.APIError{Status: http.StatusBadGateway, Message: "upstream down"}
	api.mu.Unlock()

	err := c.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, c.Snapshot())
	assert.ErrorIs(t, c.LoadError(), err)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "upstream down")

	api.mu.Lock()
	delete(api.listErr, models.ResourceSlides)
	api.mu.Unlock()
	require.NoError(t, c.FetchAll(context.Background()))
	assert.NoError(t, c.LoadError())
	assert.Len(t, c.Snapshot().Team, 2)
}

func TestFailedCreateLeavesSnapshotAndNotifiesOnce(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)
	before := c.Snapshot()
	listsBefore := api.listCount()

	api.createErr = &client.APIError{Status: http.StatusInternalServerError, Message: "Internal Server Error"}
	err := c.Create(context.Background(), models.ResourceSlides, Payload{"title": "New"})
	require.Error(t, err)

	assert.Equal(t, before, c.Snapshot())
	assert.Len(t, notifier.errors, 1)
	assert.Empty(t, notifier.successes)
	assert.Equal(t, listsBefore, api.listCount(), "no refetch after a failed create")
}

func TestCreateRefetches(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)
	listsBefore := api.listCount()

	require.NoError(t, c.Create(context.Background(), models.ResourceSlides, Payload{"title": "Spring"}))

	assert.Equal(t, listsBefore+4, api.listCount())
	slides := c.Snapshot().Slides
	require.Len(t, slides, 2)
	assert.Equal(t, "Spring", slides[1].Title)
	assert.Equal(t, []string{"Slide created"}, notifier.successes)
}

func TestUpdateRefetches(t *testing.T) {
	api := newFakeAPI()
	c, _ := newTestController(t, api)
	listsBefore := api.listCount()

	require.NoError(t, c.Update(context.Background(), models.ResourceProjects, 1, Payload{"title": "Renamed"}))
	calls := api.mutations()
	require.Len(t, calls, 1)
	assert.Equal(t, call{Method: "update", Type: models.ResourceProjects, ID: 1, Payload: Payload{"title": "Renamed"}}, calls[0])
	assert.Equal(t, listsBefore+4, api.listCount())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := newFakeAPI()
	confirm := &countingConfirmer{answer: false}
	c, notifier := newTestController(t, api, WithConfirmer(confirm))
	before := c.Snapshot()
	listsBefore := api.listCount()

	err := c.Delete(context.Background(), models.ResourceProjects, 1)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Len(t, confirm.asked, 1)
	assert.Empty(t, api.mutations())
	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, listsBefore, api.listCount())
	assert.Empty(t, notifier.errors)

	confirm.answer = true
	require.NoError(t, c.Delete(context.Background(), models.ResourceProjects, 1))
	assert.Len(t, api.mutations(), 1)
	assert.Empty(t, c.Snapshot().Projects)
}

func TestDeleteWithoutConfirmerIsRefused(t *testing.T) {
	api := newFakeAPI()
	c, _ := newTestController(t, api)

	assert.ErrorIs(t, c.Delete(context.Background(), models.ResourceTeam, 1), ErrCancelled)
	assert.Empty(t, api.mutations())
}

func TestForbiddenIsReportedGenerically(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api, WithConfirmer(ConfirmFunc(func(string) bool { return true })))

	api.deleteErr = &client.APIError{Status: http.StatusForbidden, Message: "CSRF token invalid", Field: "csrf"}
	require.Error(t, c.Delete(context.Background(), models.ResourceTeam, 1))
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "forbidden")
}

func TestActiveTabPersistence(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()

	c := NewController(ctx, newFakeAPI(), WithPreferences(store))
	assert.Equal(t, models.ResourceTeam, c.ActiveTab())

	require.NoError(t, c.SetTab(ctx, models.ResourceCategories))
	saved, ok, _ := store.Get(ctx, ActiveTabKey)
	assert.True(t, ok)
	assert.Equal(t, "categories", saved)

	reloaded := NewController(ctx, newFakeAPI(), WithPreferences(store))
	assert.Equal(t, models.ResourceCategories, reloaded.ActiveTab())

	assert.Error(t, reloaded.SetTab(ctx, models.ResourceType("blog")))
	assert.Equal(t, models.ResourceCategories, reloaded.ActiveTab())
}

func TestActiveTabIgnoresUnknownSavedValue(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	require.NoError(t, store.Set(ctx, ActiveTabKey, "inquiries-v1"))

	c := NewController(ctx, newFakeAPI(), WithPreferences(store))
	assert.Equal(t, models.ResourceTeam, c.ActiveTab())
}

func TestActiveTabSurvivesRestartWithSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "admin.db")

	store, err := prefs.Open(path)
	require.NoError(t, err)
	c := NewController(ctx, newFakeAPI(), WithPreferences(store))
	require.NoError(t, c.SetTab(ctx, models.ResourceSlides))
	require.NoError(t, store.Close())

	reopened, err := prefs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	assert.Equal(t, models.ResourceSlides, NewController(ctx, newFakeAPI(), WithPreferences(reopened)).ActiveTab())
}

func TestSubmitRoutesByMode(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)

	form, err := c.OpenCreate(models.ResourceCategories)
	require.NoError(t, err)
	form.Set("name", "Brand Identity")
	require.NoError(t, c.Submit(context.Background(), form))

	edit, err := c.OpenEdit(models.ResourceCategories, 1)
	require.NoError(t, err)
	edit.Set("name", "Web  Design 2")
	require.NoError(t, c.Submit(context.Background(), edit))

	calls := api.mutations()
	require.Len(t, calls, 2)
	assert.Equal(t, "create", calls[0].Method)
	assert.Equal(t, "brand-identity", calls[0].Payload.(Payload)["slug"])
	assert.Equal(t, "update", calls[1].Method)
	assert.Equal(t, uint(1), calls[1].ID)
	assert.Equal(t, "web-design-2", calls[1].Payload.(Payload)["slug"])
	assert.Empty(t, notifier.errors)
}

func TestSubmitValidationFailsWithoutCall(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)

	form, err := c.OpenCreate(models.ResourceTeam)
	require.NoError(t, err)
	err = c.Submit(context.Background(), form)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Field)
	assert.Empty(t, api.mutations())
	assert.Equal(t, []string{"name is required"}, notifier.errors)
}

func TestOpenEditUnknownRow(t *testing.T) {
	c, _ := newTestController(t, newFakeAPI())

	_, err := c.OpenEdit(models.ResourceTeam, 42)
	assert.ErrorIs(t, err, errRowNotLoaded)
}

func TestUploadImageNotifiesOnce(t *testing.T) {
	api := newFakeAPI()
	c, notifier := newTestController(t, api)
	form, err := c.OpenCreate(models.ResourceSlides)
	require.NoError(t, err)

	err = c.UploadImage(context.Background(), form, "image_url", "big.png", 0, bytes.NewReader(make([]byte, 6*1024*1024)))
	assert.ErrorIs(t, err, ErrImageTooLarge)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "Failed to upload image")
	assert.Empty(t, api.uploads)

	api.uploadErr = errors.New("connection reset")
	err = c.UploadImage(context.Background(), form, "image_url", "a.png", 3, bytes.NewReader([]byte("png")))
	require.Error(t, err)
	assert.Len(t, notifier.errors, 2)

	api.uploadErr = nil
	api.uploadURL = "/uploads/slide.png"
	require.NoError(t, c.UploadImage(context.Background(), form, "image_url", "a.png", 3, bytes.NewReader([]byte("png"))))
	assert.Equal(t, "/uploads/slide.png", form.Get("image_url"))
	assert.Len(t, notifier.errors, 2)
}
