package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rpupo63/studio-site-backend/client"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inquiryFixture() []models.Inquiry {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	statuses := []models.InquiryStatus{
		models.StatusNew, models.StatusNew, models.StatusNew,
		models.StatusInProgress, models.StatusInProgress, models.StatusInProgress, models.StatusInProgress,
		models.StatusCompleted, models.StatusCompleted,
		models.StatusCancelled,
	}
	out := make([]models.Inquiry, 0, len(statuses))
	for i, status := range statuses {
		out = append(out, models.Inquiry{
			ID:            uint(i + 1),
			CompanyName:   "Company",
			ContactPerson: "Person",
			Email:         "person@company.test",
			Status:        status,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}
	out[0].CompanyName = "Acme Corp"
	out[4].ContactPerson = "Jane ACME"
	out[8].Email = "ops@acme.io"
	return out
}

func newTestBoard(t *testing.T, api *fakeInquiryAPI, opts ...Option) (*InquiryBoard, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	b := NewInquiryBoard(api, append([]Option{WithNotifier(notifier)}, opts...)...)
	require.NoError(t, b.Refresh(context.Background()))
	return b, notifier
}

func ids(inquiries []models.Inquiry) []uint {
	out := make([]uint, 0, len(inquiries))
	for _, inq := range inquiries {
		out = append(out, inq.ID)
	}
	return out
}

func TestBoardStats(t *testing.T) {
	b, _ := newTestBoard(t, &fakeInquiryAPI{inquiries: inquiryFixture()})
	assert.Equal(t, models.InquiryStats{Total: 10, New: 3, InProgress: 4, Completed: 2}, b.Stats())

	// stats ignore the view filter
	require.NoError(t, b.SetFilter(models.StatusFilter(models.StatusCompleted)))
	assert.Equal(t, 10, b.Stats().Total)
}

func TestBoardFilterAndSearch(t *testing.T) {
	b, _ := newTestBoard(t, &fakeInquiryAPI{inquiries: inquiryFixture()})

	assert.Equal(t, []uint{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, ids(b.Visible()))

	b.SetSearch("acme")
	assert.Equal(t, []uint{9, 5, 1}, ids(b.Visible()))

	require.NoError(t, b.SetFilter(models.StatusFilter(models.StatusInProgress)))
	assert.Equal(t, []uint{5}, ids(b.Visible()))

	b.SetSearch("")
	assert.Equal(t, []uint{7, 6, 5, 4}, ids(b.Visible()))

	assert.Error(t, b.SetFilter("archived"))
}

func TestBoardRefreshFailureKeepsList(t *testing.T) {
	api := &fakeInquiryAPI{inquiries: inquiryFixture()}
	b, notifier := newTestBoard(t, api)

	api.listErr = errors.New("network down")
	require.Error(t, b.Refresh(context.Background()))
	assert.Len(t, b.Visible(), 10)
	assert.Error(t, b.LoadError())
	assert.Len(t, notifier.errors, 1)
}

func TestBoardChangeStatusUsesServerRecord(t *testing.T) {
	serverNotes := "called back"
	api := &fakeInquiryAPI{inquiries: inquiryFixture(), serverNotes: &serverNotes}
	b, notifier := newTestBoard(t, api)

	require.NoError(t, b.ChangeStatus(context.Background(), 1, models.StatusCompleted, nil))

	require.NoError(t, b.SetFilter(models.StatusFilter(models.StatusCompleted)))
	visible := b.Visible()
	assert.Equal(t, []uint{9, 8, 1}, ids(visible))
	require.NotNil(t, visible[2].Notes)
	assert.Equal(t, "called back", *visible[2].Notes)
	assert.Equal(t, 3, b.Stats().Completed)
	assert.Empty(t, notifier.errors)
}

func TestBoardChangeStatusFailureIsNotApplied(t *testing.T) {
	api := &fakeInquiryAPI{inquiries: inquiryFixture()}
	b, notifier := newTestBoard(t, api)
	before := b.Visible()

	api.changeErr = &client.APIError{Status: http.StatusInternalServerError, Message: "database unavailable"}
	require.Error(t, b.ChangeStatus(context.Background(), 1, models.StatusCompleted, nil))

	assert.Equal(t, before, b.Visible())
	assert.Equal(t, []string{"Failed to update inquiry: database unavailable"}, notifier.errors)
}

func TestBoardChangeStatusWithoutRecord(t *testing.T) {
	api := &fakeInquiryAPI{inquiries: inquiryFixture(), emptyReply: true}
	b, notifier := newTestBoard(t, api)
	before := b.Visible()

	require.Error(t, b.ChangeStatus(context.Background(), 1, models.StatusCompleted, nil))

	assert.Equal(t, before, b.Visible())
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "Failed to update inquiry")
	assert.Empty(t, notifier.successes)
}

func TestBoardRejectsUnknownStatusLocally(t *testing.T) {
	api := &fakeInquiryAPI{inquiries: inquiryFixture()}
	b, notifier := newTestBoard(t, api)

	require.Error(t, b.ChangeStatus(context.Background(), 1, "archived", nil))
	assert.Empty(t, api.changes)
	assert.Len(t, notifier.errors, 1)
}

func TestBoardDelete(t *testing.T) {
	api := &fakeInquiryAPI{inquiries: inquiryFixture()}
	confirm := &countingConfirmer{}
	b, _ := newTestBoard(t, api, WithConfirmer(confirm))

	assert.ErrorIs(t, b.Delete(context.Background(), 3), ErrCancelled)
	assert.Empty(t, api.deletes)
	assert.Len(t, b.Visible(), 10)

	confirm.answer = true
	require.NoError(t, b.Delete(context.Background(), 3))
	assert.Equal(t, []uint{3}, api.deletes)
	assert.NotContains(t, ids(b.Visible()), uint(3))
	assert.Equal(t, 2, b.Stats().New)
}

func TestBoardDeleteFailureKeepsRow(t *testing.T) {
	api := &fakeInquiryAPI{inquiries: inquiryFixture(), deleteErr: errors.New("timeout")}
	b, notifier := newTestBoard(t, api, WithConfirmer(ConfirmFunc(func(string) bool { return true })))

	require.Error(t, b.Delete(context.Background(), 3))
	assert.Contains(t, ids(b.Visible()), uint(3))
	assert.Len(t, notifier.errors, 1)
}
