package models

import "time"

type Staff struct {
	ID         int64     `json:"id"`
	StaffName  string    `json:"staff_name"`
	StaffEmail string    `json:"staff_email"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentKind selects one of the two tables that share the document shape.
type DocumentKind string

const (
	DocumentEmailTemplate DocumentKind = "email_templates"
	DocumentPressRelease  DocumentKind = "press_releases"
)

// Document is an email template or a press release.
type Document struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	HTMLContent string    `json:"html_content"`
	Image       []byte    `json:"-"`
	HasImage    bool      `json:"has_image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FollowUpEmail struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	OutletName string    `json:"outlet_name"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CoverageReport struct {
	ID            int64     `json:"id"`
	Link          string    `json:"link"`
	Article       string    `json:"article"`
	DateOfPublish string    `json:"date_of_publish"`
	CreatedAt     time.Time `json:"created_at"`
}

// OutreachLog records one webhook delivery attempt.
type OutreachLog struct {
	ID           int64     `json:"id"`
	TargetTable  string    `json:"target_table"`
	WebhookURL   string    `json:"webhook_url"`
	OutletNames  string    `json:"outlet_names"`
	StaffMembers string    `json:"staff_members"`
	ContactCount int       `json:"contact_count"`
	StatusCode   int       `json:"status_code"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// OutreachPayload is the body POSTed to each configured webhook.
type OutreachPayload struct {
	StaffMembers []StaffMember       `json:"staff_members"`
	OutletNames  []string            `json:"outlet_names"`
	Contacts     []map[string]string `json:"contacts"`
}

type OutreachResult struct {
	Message      string `json:"message"`
	Delivered    int    `json:"delivered"`
	Attempted    int    `json:"attempted"`
	ContactCount int    `json:"contact_count"`
}
