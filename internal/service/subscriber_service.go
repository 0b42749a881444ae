// internal/service/subscriber_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/mailer"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/repository"
)

type SubscriberService struct {
	SubscriberRepo repository.SubscriberRepositoryInterface
	Sender         mailer.Sender
	Log            *zap.SugaredLogger

	FrontendURL string
}

// SubscriberPage is one page of the admin directory listing.
type SubscriberPage struct {
	Subscribers []model.Subscriber `json:"subscribers"`
	Pagination  Pagination         `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (s *SubscriberService) List(page, limit int, search, sortBy, sortOrder string) (*SubscriberPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	subscribers, total, err := s.SubscriberRepo.List(offset, limit, search, sortBy, sortOrder)
	if err != nil {
		return nil, err
	}

	return &SubscriberPage{
		Subscribers: subscribers,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *SubscriberService) Stats() (*model.SubscriberStats, error) {
	stats, err := s.SubscriberRepo.Stats()
	if err != nil {
		return nil, err
	}

	switch {
	case stats.LastMonth > 0:
		rate := float64(stats.ThisMonth-stats.LastMonth) / float64(stats.LastMonth) * 100
		stats.GrowthRate = math.Round(rate*100) / 100
	case stats.ThisMonth > 0:
		stats.GrowthRate = 100
	}
	return stats, nil
}

// Subscribe is idempotent on email: an unsubscribed row flips back to active
// in place, an active row is a conflict, and only a genuinely new email gets
// a fresh row (plus a best-effort welcome email).
func (s *SubscriberService) Subscribe(ctx context.Context, email, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" {
		return apperrors.NewValidation("Email is required")
	}
	if !ValidEmail(email) {
		return apperrors.NewValidation("Invalid email format")
	}

	existing, err := s.SubscriberRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Subscribed {
			return apperrors.NewConflict("Already subscribed")
		}
		return s.SubscriberRepo.Resubscribe(email)
	}

	sub := &model.Subscriber{
		ID:               uuid.NewString(),
		Email:            email,
		Subscribed:       true,
		SubscribedAt:     time.Now().UTC(),
		UnsubscribeToken: uuid.NewString(),
	}
	if name != "" {
		sub.Name = &name
	}
	if err := s.SubscriberRepo.Insert(sub); err != nil {
		return err
	}

	// Welcome email is best effort: a transport hiccup must not fail the
	// subscription that already happened.
	unsubscribeURL := fmt.Sprintf("%s/unsubscribe?token=%s", s.FrontendURL, sub.UnsubscribeToken)
	if err := s.Sender.Send(ctx, mailer.Email{
		To:      email,
		Subject: "¡Bienvenido a BIDXAAGUI!",
		HTML:    mailer.WelcomeEmailHTML(name, unsubscribeURL),
		Text:    mailer.WelcomeEmailText(name, unsubscribeURL),
	}); err != nil {
		s.Log.Warnw("failed to send welcome email", "email", email, "error", err)
	}

	return nil
}

// Unsubscribe soft-deletes by self-service token.
func (s *SubscriberService) Unsubscribe(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewValidation("Unsubscribe token is required")
	}

	sub, err := s.SubscriberRepo.GetByUnsubscribeToken(token)
	if err != nil {
		return err
	}
	if sub == nil {
		return apperrors.NewNotFound("unsubscribe token", "")
	}

	return s.SubscriberRepo.Unsubscribe(sub.ID)
}

func (s *SubscriberService) Delete(id string) error {
	sub, err := s.SubscriberRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return apperrors.NewNotFound("subscriber", id)
	}
	return s.SubscriberRepo.Delete(id)
}

// ExportCSV renders every active subscriber as CSV and returns the bytes plus
// the dated attachment filename.
func (s *SubscriberService) ExportCSV() ([]byte, string, error) {
	subscribers, err := s.SubscriberRepo.ExportRows()
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Email", "Name", "Subscribed At"}); err != nil {
		return nil, "", err
	}
	for _, sub := range subscribers {
		name := ""
		if sub.Name != nil {
			name = *sub.Name
		}
		if err := w.Write([]string{sub.Email, name, sub.SubscribedAt.UTC().Format(time.RFC3339)}); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("subscribers-%s.csv", time.Now().UTC().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
