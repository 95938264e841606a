package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rpupo63/studio-site-backend/models"
)

type collection[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var resp collection[T]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []T{}
	}
	return resp.Data, nil
}

func resourcePath(rt models.ResourceType) (string, error) {
	if !rt.Valid() {
		return "", fmt.Errorf("unknown resource type %q", rt)
	}
	return "/api/" + string(rt), nil
}

func (c *Client) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	return list[models.TeamMember](ctx, c, "/api/team")
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return list[models.Project](ctx, c, "/api/projects")
}

func (c *Client) ListSlides(ctx context.Context) ([]models.BannerSlide, error) {
	return list[models.BannerSlide](ctx, c, "/api/slides")
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, c, "/api/categories")
}

// Create posts payload to the collection and returns the persisted row as sent by the server.
func (c *Client) Create(ctx context.Context, rt models.ResourceType, payload any) (json.RawMessage, error) {
	path, err := resourcePath(rt)
	if err != nil {
		return nil, err
	}
	var created json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the row wholesale.
func (c *Client) Update(ctx context.Context, rt models.ResourceType, id uint, payload any) (json.RawMessage, error) {
	path, err := resourcePath(rt)
	if err != nil {
		return nil, err
	}
	var updated json.RawMessage
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", path, id), payload, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, rt models.ResourceType, id uint) error {
	path, err := resourcePath(rt)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", path, id), nil, nil)
}

// SubmitInquiry is what the public contact form calls.
func (c *Client) SubmitInquiry(ctx context.Context, inquiry models.Inquiry) (*models.Inquiry, error) {
	var created models.Inquiry
	if err := c.doJSON(ctx, http.MethodPost, "/api/inquiries", inquiry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListInquiries(ctx context.Context, filter models.StatusFilter, search string) ([]models.Inquiry, error) {
	query := url.Values{}
	if filter != "" && filter != models.FilterAll {
		query.Set("status", string(filter))
	}
	if search != "" {
		query.Set("search", search)
	}
	path := "/api/inquiries"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return list[models.Inquiry](ctx, c, path)
}

func (c *Client) InquiryStats(ctx context.Context) (models.InquiryStats, error) {
	var stats models.InquiryStats
	err := c.doJSON(ctx, http.MethodGet, "/api/inquiries/stats", nil, &stats)
	return stats, err
}

// ChangeInquiryStatus returns the record as stored by the server.
func (c *Client) ChangeInquiryStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string) (*models.Inquiry, error) {
	payload := struct {
		Status models.InquiryStatus `json:"status"`
		Notes  *string              `json:"notes,omitempty"`
	}{status, notes}

	var updated models.Inquiry
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/inquiries/%d/status", id), payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteInquiry(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/inquiries/%d", id), nil, nil)
}

func (c *Client) InquiryActivity(ctx context.Context, id uint) ([]models.InquiryActivity, error) {
	return list[models.InquiryActivity](ctx, c, fmt.Sprintf("/api/inquiries/%d/activity", id))
}

func (c *Client) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings models.SiteSettings) (*models.SiteSettings, error) {
	var saved models.SiteSettings
	if err := c.doJSON(ctx, http.MethodPut, "/api/settings", settings, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Upload sends one image as the multipart field "image" and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, image io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload", body.Bytes(), writer.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
