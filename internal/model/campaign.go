// internal/model/campaign.go
package model

import "time"

// Campaign statuses
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusSending   = "sending"
	StatusSent      = "sent"
	StatusFailed    = "failed"
)

type Campaign struct {
	ID              string     `db:"id" json:"id"`
	Subject         string     `db:"subject" json:"subject"`
	PreviewText     *string    `db:"preview_text" json:"preview_text,omitempty"`
	Content         string     `db:"content" json:"content"`
	Status          string     `db:"status" json:"status"`
	TotalRecipients int        `db:"total_recipients" json:"total_recipients"`
	SuccessfulSends int        `db:"successful_sends" json:"successful_sends"`
	FailedSends     int        `db:"failed_sends" json:"failed_sends"`
	SentAt          *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Sendable reports whether the campaign may enter the send pipeline.
// Only drafts and previously failed campaigns are eligible; a resend of a
// failed campaign is allowed, everything else is rejected.
func (c *Campaign) Sendable() bool {
	return c.Status == StatusDraft || c.Status == StatusFailed
}
