// internal/service/campaign_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/mailer"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/repository"
)

const (
	// defaultBatchSize bounds how many sends are in flight at once so the
	// provider never sees more than a handful of concurrent calls.
	defaultBatchSize = 3
	// defaultBatchDelay is the fixed pause between batches. Not adaptive;
	// campaign sends are not latency-sensitive.
	defaultBatchDelay = time.Second

	testSubjectPrefix = "[TEST] "
)

type CampaignService struct {
	CampaignRepo   repository.CampaignRepositoryInterface
	SubscriberRepo repository.SubscriberRepositoryInterface
	AdminRepo      repository.AdminRepositoryInterface
	Sender         mailer.Sender
	Log            *zap.SugaredLogger

	BatchSize  int
	BatchDelay time.Duration
}

func NewCampaignService(
	campaignRepo repository.CampaignRepositoryInterface,
	subscriberRepo repository.SubscriberRepositoryInterface,
	adminRepo repository.AdminRepositoryInterface,
	sender mailer.Sender,
	log *zap.SugaredLogger,
) *CampaignService {
	return &CampaignService{
		CampaignRepo:   campaignRepo,
		SubscriberRepo: subscriberRepo,
		AdminRepo:      adminRepo,
		Sender:         sender,
		Log:            log,
		BatchSize:      defaultBatchSize,
		BatchDelay:     defaultBatchDelay,
	}
}

// SendResult summarizes one send operation.
type SendResult struct {
	SuccessCount int    `json:"sent"`
	FailCount    int    `json:"failed"`
	Message      string `json:"message"`
}

// sendOutcome is the per-recipient result inside one batch. Outcomes are
// logged and summed, never persisted row by row.
type sendOutcome struct {
	email string
	err   error
}

func (s *CampaignService) List() ([]model.Campaign, error) {
	return s.CampaignRepo.List()
}

func (s *CampaignService) Get(id string) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) Create(subject string, previewText *string, content string) (*model.Campaign, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidation("Subject and content are required")
	}

	c := &model.Campaign{
		Subject:     subject,
		PreviewText: previewText,
		Content:     content,
		Status:      model.StatusDraft,
	}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update edits a draft in place. Empty subject/content keep the stored value;
// a present preview_text always overwrites. Non-drafts are immutable.
func (s *CampaignService) Update(id, subject string, previewText *string, content string) error {
	existing, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.Status != model.StatusDraft {
		return apperrors.NewInvalidState("Only draft campaigns can be edited")
	}

	if subject == "" {
		subject = existing.Subject
	}
	if content == "" {
		content = existing.Content
	}
	if previewText == nil {
		previewText = existing.PreviewText
	}

	return s.CampaignRepo.UpdateDraft(id, subject, previewText, content)
}

func (s *CampaignService) Delete(id string) error {
	return s.CampaignRepo.Delete(id)
}

// SendTest sends the campaign content, subject-prefixed with the test marker,
// to every admin user concurrently. Campaign status is never touched.
func (s *CampaignService) SendTest(ctx context.Context, id string) (*SendResult, error) {
	adminEmails, err := s.AdminRepo.ListUserEmails()
	if err != nil {
		return nil, err
	}
	if len(adminEmails) == 0 {
		return nil, apperrors.NewInvalidState("No admin users found")
	}

	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	outcomes := s.dispatchBatch(ctx, campaign, adminEmails, testSubjectPrefix)

	result := &SendResult{}
	for _, o := range outcomes {
		if o.err != nil {
			result.FailCount++
			s.Log.Warnw("test send failed", "campaign_id", id, "email", o.email, "error", o.err)
		} else {
			result.SuccessCount++
		}
	}
	result.Message = fmt.Sprintf("Test email sent to %d recipients. %d failed.", result.SuccessCount, result.FailCount)
	return result, nil
}

// SendSingleTest sends one test-marked email to an arbitrary address, leaving
// campaign status untouched.
func (s *CampaignService) SendSingleTest(ctx context.Context, id, testEmail string) error {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return err
	}

	return s.Sender.Send(ctx, mailer.Email{
		To:      testEmail,
		Subject: testSubjectPrefix + campaign.Subject,
		HTML:    campaign.Content,
		Text:    "View this email in your browser.",
	})
}

// Send delivers the campaign to every currently subscribed recipient.
//
// The recipient list is partitioned into fixed-size batches; each batch is
// dispatched concurrently and settled in full (one failed send never aborts
// its batch), with a fixed pause between batches to stay under provider rate
// limits. The terminal status is "failed" only when every single send failed;
// partial delivery is still "sent", because a wholesale retry would re-email
// recipients that were already reached.
//
// The status write to "sending" happens before the first send attempt, so a
// crash mid-loop leaves visible evidence of the interrupted run. A crash
// between that write and the final one leaves the campaign parked in
// "sending" with no automatic recovery — that needs a manual status fix
// before a resend is possible.
func (s *CampaignService) Send(ctx context.Context, id string) (result *SendResult, err error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !campaign.Sendable() {
		return nil, apperrors.NewInvalidState("Campaign is not in a state to be sent")
	}

	recipients, err := s.SubscriberRepo.ActiveEmails()
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, apperrors.NewInvalidState("No active subscribers found")
	}

	// Compare-and-swap into "sending". If another request won the race the
	// update touches zero rows and this one stops here, before any send.
	ok, err := s.CampaignRepo.MarkSending(id, len(recipients))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewInvalidState("Campaign is not in a state to be sent")
	}

	// Whatever happens inside the loop, the campaign must not stay stuck in
	// "sending" when this function returns.
	defer func() {
		if r := recover(); r != nil {
			s.Log.Errorw("send loop panicked, forcing campaign to failed", "campaign_id", id, "panic", r)
			if ferr := s.CampaignRepo.ForceStatus(id, model.StatusFailed); ferr != nil {
				s.Log.Errorw("failed to force campaign status", "campaign_id", id, "error", ferr)
			}
			result = nil
			err = fmt.Errorf("failed to send campaign")
		}
	}()

	successCount, failCount := 0, 0
	for start := 0; start < len(recipients); start += s.BatchSize {
		end := start + s.BatchSize
		if end > len(recipients) {
			end = len(recipients)
		}

		for _, o := range s.dispatchBatch(ctx, campaign, recipients[start:end], "") {
			if o.err != nil {
				failCount++
				s.Log.Warnw("send failed", "campaign_id", id, "email", o.email, "error", o.err)
			} else {
				successCount++
			}
		}

		if end < len(recipients) {
			time.Sleep(s.BatchDelay)
		}
	}

	finalStatus := model.StatusSent
	if failCount == len(recipients) {
		finalStatus = model.StatusFailed
	}
	if err := s.CampaignRepo.FinishSend(id, finalStatus, successCount, failCount); err != nil {
		return nil, err
	}

	s.Log.Infow("campaign send finished",
		"campaign_id", id, "status", finalStatus,
		"sent", successCount, "failed", failCount)

	return &SendResult{
		SuccessCount: successCount,
		FailCount:    failCount,
		Message:      fmt.Sprintf("Campaign sent: %d successful, %d failed", successCount, failCount),
	}, nil
}

// dispatchBatch fires one send per recipient and waits for all of them.
// Every outcome is captured; a transport failure is data, not a reason to
// abort the batch.
func (s *CampaignService) dispatchBatch(ctx context.Context, campaign *model.Campaign, recipients []string, subjectPrefix string) []sendOutcome {
	text := campaign.Subject
	if campaign.PreviewText != nil && *campaign.PreviewText != "" {
		text = *campaign.PreviewText
	}

	outcomes := make([]sendOutcome, len(recipients))
	var wg sync.WaitGroup
	for i, email := range recipients {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			err := s.Sender.Send(ctx, mailer.Email{
				To:      email,
				Subject: subjectPrefix + campaign.Subject,
				HTML:    campaign.Content,
				Text:    text,
			})
			outcomes[i] = sendOutcome{email: email, err: err}
		}(i, email)
	}
	wg.Wait()
	return outcomes
}
