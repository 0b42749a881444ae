package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/mailer"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
)

// --- Mock repositories ---

type finishCall struct {
	status     string
	successful int
	failed     int
}

type mockCampaignRepo struct {
	campaign *model.Campaign

	markSendingOK    bool
	markSendingCalls int
	markSendingTotal int
	finishCalls      []finishCall
	forceCalls       []string
	updateCalls      int
}

func (m *mockCampaignRepo) List() ([]model.Campaign, error) {
	if m.campaign == nil {
		return []model.Campaign{}, nil
	}
	return []model.Campaign{*m.campaign}, nil
}

func (m *mockCampaignRepo) GetByID(id string) (*model.Campaign, error) {
	if m.campaign == nil || m.campaign.ID != id {
		return nil, apperrors.NewNotFound("campaign", id)
	}
	c := *m.campaign
	return &c, nil
}

func (m *mockCampaignRepo) Create(c *model.Campaign) error {
	c.ID = "created-id"
	m.campaign = c
	return nil
}

func (m *mockCampaignRepo) UpdateDraft(id, subject string, previewText *string, content string) error {
	m.updateCalls++
	return nil
}

func (m *mockCampaignRepo) Delete(id string) error { return nil }

func (m *mockCampaignRepo) MarkSending(id string, totalRecipients int) (bool, error) {
	m.markSendingCalls++
	m.markSendingTotal = totalRecipients
	return m.markSendingOK, nil
}

func (m *mockCampaignRepo) FinishSend(id, status string, successful, failed int) error {
	m.finishCalls = append(m.finishCalls, finishCall{status, successful, failed})
	return nil
}

func (m *mockCampaignRepo) ForceStatus(id, status string) error {
	m.forceCalls = append(m.forceCalls, status)
	return nil
}

type mockSubscriberRepo struct {
	emails     []string
	subscriber *model.Subscriber

	inserted     []model.Subscriber
	resubscribed []string
	unsubscribed []string
	deleted      []string
	stats        *model.SubscriberStats
	exportRows   []model.Subscriber
}

func (m *mockSubscriberRepo) List(offset, limit int, search, sortBy, sortOrder string) ([]model.Subscriber, int, error) {
	return []model.Subscriber{}, 0, nil
}

func (m *mockSubscriberRepo) GetByID(id string) (*model.Subscriber, error) {
	if m.subscriber != nil && m.subscriber.ID == id {
		return m.subscriber, nil
	}
	return nil, nil
}

func (m *mockSubscriberRepo) GetByEmail(email string) (*model.Subscriber, error) {
	if m.subscriber != nil && m.subscriber.Email == email {
		return m.subscriber, nil
	}
	return nil, nil
}

func (m *mockSubscriberRepo) GetByUnsubscribeToken(token string) (*model.Subscriber, error) {
	if m.subscriber != nil && m.subscriber.UnsubscribeToken == token {
		return m.subscriber, nil
	}
	return nil, nil
}

func (m *mockSubscriberRepo) Insert(s *model.Subscriber) error {
	m.inserted = append(m.inserted, *s)
	return nil
}

func (m *mockSubscriberRepo) Resubscribe(email string) error {
	m.resubscribed = append(m.resubscribed, email)
	return nil
}

func (m *mockSubscriberRepo) Unsubscribe(id string) error {
	m.unsubscribed = append(m.unsubscribed, id)
	return nil
}

func (m *mockSubscriberRepo) Delete(id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSubscriberRepo) ActiveEmails() ([]string, error) {
	return m.emails, nil
}

func (m *mockSubscriberRepo) Stats() (*model.SubscriberStats, error) {
	if m.stats == nil {
		return &model.SubscriberStats{RecentGrowth: []model.DailyGrowth{}}, nil
	}
	return m.stats, nil
}

func (m *mockSubscriberRepo) ExportRows() ([]model.Subscriber, error) {
	return m.exportRows, nil
}

type mockAdminRepo struct {
	user   *model.AdminUser
	emails []string

	tokens     map[string]*model.MagicLinkToken
	lastLogins []string
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{tokens: map[string]*model.MagicLinkToken{}}
}

func (m *mockAdminRepo) GetUserByEmail(email string) (*model.AdminUser, error) {
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockAdminRepo) GetUserByID(id string) (*model.AdminUser, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockAdminRepo) ListUserEmails() ([]string, error) {
	return m.emails, nil
}

func (m *mockAdminRepo) TouchLastLogin(id string) error {
	m.lastLogins = append(m.lastLogins, id)
	return nil
}

func (m *mockAdminRepo) InsertToken(t *model.MagicLinkToken) error {
	copied := *t
	m.tokens[t.Token] = &copied
	return nil
}

func (m *mockAdminRepo) GetToken(token string) (*model.MagicLinkToken, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (m *mockAdminRepo) MarkTokenUsed(token string) error {
	if t, ok := m.tokens[token]; ok {
		t.Used = true
	}
	return nil
}

// --- Fake email transport ---

// fakeSender records every send, can fail selected (or all) recipients, and
// tracks how many sends were in flight at once.
type fakeSender struct {
	mu sync.Mutex

	sent    []mailer.Email
	failAll bool
	failFor map[string]bool
	perSend time.Duration

	inFlight    int
	maxInFlight int
}

func (f *fakeSender) Send(ctx context.Context, email mailer.Email) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.sent = append(f.sent, email)
	shouldFail := f.failAll || f.failFor[email.To]
	delay := f.perSend
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if shouldFail {
		return errTransport
	}
	return nil
}

var errTransport = &transportError{}

type transportError struct{}

func (*transportError) Error() string { return "provider rejected the message" }
