package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
)

// InquiryBoard is the admin's inquiry list. The full list is kept locally;
// filtering, search and stats run over it without further requests. Rows are
// only ever replaced with what the server confirmed.
type InquiryBoard struct {
	api     InquiryAPI
	confirm Confirmer
	notify  Notifier
	logger  zerolog.Logger

	mu        sync.RWMutex
	inquiries []models.Inquiry
	loadErr   error
	filter    models.StatusFilter
	search    string
}

func NewInquiryBoard(api InquiryAPI, opts ...Option) *InquiryBoard {
	o := newOptions("inquiryBoard", opts)
	return &InquiryBoard{
		api:       api,
		confirm:   o.confirm,
		notify:    o.notify,
		logger:    o.logger,
		inquiries: []models.Inquiry{},
		filter:    models.FilterAll,
	}
}

// Refresh reloads every inquiry. On failure the current list is kept.
func (b *InquiryBoard) Refresh(ctx context.Context) error {
	inquiries, err := b.api.ListInquiries(ctx, models.FilterAll, "")
	if err != nil {
		b.mu.Lock()
		b.loadErr = err
		b.mu.Unlock()
		b.notify.Error("Failed to load inquiries: " + describe(err))
		return err
	}
	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}

	b.mu.Lock()
	b.inquiries = inquiries
	b.loadErr = nil
	b.mu.Unlock()
	return nil
}

func (b *InquiryBoard) LoadError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

func (b *InquiryBoard) SetFilter(filter models.StatusFilter) error {
	if !filter.Valid() {
		return fmt.Errorf("unknown status filter %q", filter)
	}
	b.mu.Lock()
	b.filter = filter
	b.mu.Unlock()
	return nil
}

func (b *InquiryBoard) SetSearch(term string) {
	b.mu.Lock()
	b.search = term
	b.mu.Unlock()
}

// Visible returns the inquiries matching the filter and search, newest first.
func (b *InquiryBoard) Visible() []models.Inquiry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return models.FilterInquiries(b.inquiries, b.filter, b.search)
}

// Stats counts over every loaded inquiry, ignoring filter and search.
func (b *InquiryBoard) Stats() models.InquiryStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return models.ComputeInquiryStats(b.inquiries)
}

// ChangeStatus sends the new status and, once the server confirms, swaps in
// the returned record. Nil notes leave the stored notes alone.
func (b *InquiryBoard) ChangeStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string) error {
	if !status.Valid() {
		err := &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
		b.notify.Error(describe(err))
		return err
	}

	updated, err := b.api.ChangeInquiryStatus(ctx, id, status, notes)
	if err == nil && updated == nil {
		err = fmt.Errorf("no inquiry returned for id %d", id)
	}
	if err != nil {
		b.notify.Error("Failed to update inquiry: " + describe(err))
		return err
	}

	b.mu.Lock()
	replaced := false
	for i := range b.inquiries {
		if b.inquiries[i].ID == updated.ID {
			b.inquiries[i] = *updated
			replaced = true
			break
		}
	}
	if !replaced {
		b.inquiries = append(b.inquiries, *updated)
	}
	b.mu.Unlock()

	b.notify.Success("Inquiry marked " + string(updated.Status))
	return nil
}

// Delete removes an inquiry for good after confirmation.
func (b *InquiryBoard) Delete(ctx context.Context, id uint) error {
	if !b.confirm.Confirm("Delete this inquiry? This cannot be undone.") {
		return ErrCancelled
	}
	if err := b.api.DeleteInquiry(ctx, id); err != nil {
		b.notify.Error("Failed to delete inquiry: " + describe(err))
		return err
	}

	b.mu.Lock()
	kept := make([]models.Inquiry, 0, len(b.inquiries))
	for _, inq := range b.inquiries {
		if inq.ID != id {
			kept = append(kept, inq)
		}
	}
	b.inquiries = kept
	b.mu.Unlock()

	b.notify.Success("Inquiry deleted")
	return nil
}
