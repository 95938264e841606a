package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/models"
)

// contains checks if a string slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}

// GetAdminURL returns ADMIN_BASE_URL, falling back to BASE_URL.
func GetAdminURL(cfg map[string]string) string {
	if adminURL := config.GetString(cfg, "ADMIN_BASE_URL", ""); adminURL != "" {
		return adminURL
	}
	return config.GetString(cfg, "BASE_URL", "")
}

// BuildInquiryURL links to an inquiry in the admin dashboard, or returns ""
// when no base URL is configured.
func BuildInquiryURL(baseURL string, inquiryID uint) string {
	if baseURL == "" || inquiryID == 0 {
		return ""
	}
	return fmt.Sprintf("%s/admin/inquiries/%d", strings.TrimSuffix(baseURL, "/"), inquiryID)
}

// inquirySummary is the plain text used for SMS and the email subject line.
func inquirySummary(inquiry models.Inquiry) string {
	summary := fmt.Sprintf("New inquiry from %s (%s, %s)", inquiry.CompanyName, inquiry.ContactPerson, inquiry.Email)
	if len(inquiry.ProjectType) > 0 {
		summary += ": " + strings.Join(inquiry.ProjectType, ", ")
	}
	return summary
}

// inquiryHTML renders the notification email body. Every user supplied value is escaped.
func inquiryHTML(inquiry models.Inquiry, link string) string {
	rows := []struct{ label, value string }{
		{"Company", inquiry.CompanyName},
		{"Business type", inquiry.BusinessType},
		{"Contact", inquiry.ContactPerson},
		{"Email", inquiry.Email},
		{"Phone", inquiry.Phone},
		{"WhatsApp", inquiry.Whatsapp},
		{"Services", strings.Join(inquiry.ProjectType, ", ")},
		{"Budget", inquiry.Budget},
		{"Timeline", inquiry.Timeline},
		{"Details", inquiry.ProjectDetails},
	}

	var b strings.Builder
	b.WriteString("<h2>New project inquiry</h2><table>")
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><th align=\"left\">%s</th><td>%s</td></tr>", row.label, html.EscapeString(row.value))
	}
	b.WriteString("</table>")
	if link != "" {
		fmt.Fprintf(&b, "<p><a href=\"%s\">Open in dashboard</a></p>", html.EscapeString(link))
	}
	return b.String()
}
