// internal/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Email is one outbound message. Both bodies are always set; the text body is
// the fallback for clients that refuse HTML.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender sends a single email. Implementations must return an error whose
// message is safe to aggregate into per-recipient failure reporting.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// ResendSender implements Sender on top of the Resend API.
type ResendSender struct {
	client      *resend.Client
	senderEmail string
}

func NewResendSender(apiKey, senderEmail string) *ResendSender {
	return &ResendSender{
		client:      resend.NewClient(apiKey),
		senderEmail: senderEmail,
	}
}

func (s *ResendSender) Send(ctx context.Context, email Email) error {
	req := &resend.SendEmailRequest{
		From:    fmt.Sprintf("BIDXAAGUI <%s>", s.senderEmail),
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

var _ Sender = (*ResendSender)(nil)
