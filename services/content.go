package services

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/rpupo63/studio-site-backend/models"
)

// ContentSanitizer cleans rich text written in the admin editor before it is stored.
type ContentSanitizer struct {
	policy *bluemonday.Policy
}

func NewContentSanitizer() *ContentSanitizer {
	policy := bluemonday.UGCPolicy()
	// the editor emits alignment classes on paragraphs and headings
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "h1", "h2", "h3", "span")
	return &ContentSanitizer{policy: policy}
}

func (s *ContentSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// SanitizeProject rewrites the rich text fields of p in place
func (s *ContentSanitizer) SanitizeProject(p *models.Project) {
	p.Content = s.policy.Sanitize(p.Content)
}
