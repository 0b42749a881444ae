// internal/repository/campaign_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
)

type CampaignRepositoryInterface interface {
	List() ([]model.Campaign, error)
	GetByID(id string) (*model.Campaign, error)
	Create(c *model.Campaign) error
	UpdateDraft(id, subject string, previewText *string, content string) error
	Delete(id string) error

	// Send pipeline writes
	MarkSending(id string, totalRecipients int) (bool, error)
	FinishSend(id, status string, successful, failed int) error
	ForceStatus(id, status string) error
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, subject, preview_text, content, status,
       total_recipients, successful_sends, failed_sends, sent_at, created_at, updated_at`

func (r *CampaignRepository) List() ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(
			&c.ID, &c.Subject, &c.PreviewText, &c.Content, &c.Status,
			&c.TotalRecipients, &c.SuccessfulSends, &c.FailedSends,
			&c.SentAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) GetByID(id string) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Subject, &c.PreviewText, &c.Content, &c.Status,
		&c.TotalRecipients, &c.SuccessfulSends, &c.FailedSends,
		&c.SentAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFound("campaign", id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = model.StatusDraft
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
        INSERT INTO campaigns (id, subject, preview_text, content, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.DB.Exec(query, c.ID, c.Subject, c.PreviewText, c.Content, c.Status, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CampaignRepository) UpdateDraft(id, subject string, previewText *string, content string) error {
	query := `
        UPDATE campaigns
        SET subject=$1, preview_text=$2, content=$3, updated_at=$4
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, subject, previewText, content, time.Now().UTC(), id)
	return err
}

func (r *CampaignRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, id)
	return err
}

// MarkSending flips the campaign into "sending" and records the recipient
// count, but only from a sendable state. The WHERE clause is the guard: two
// concurrent send requests cannot both win, the loser sees zero rows affected
// and returns false.
func (r *CampaignRepository) MarkSending(id string, totalRecipients int) (bool, error) {
	query := `
        UPDATE campaigns
        SET status=$1, total_recipients=$2, updated_at=$3
        WHERE id=$4 AND status IN ($5, $6)
    `
	res, err := r.DB.Exec(query, model.StatusSending, totalRecipients, time.Now().UTC(), id, model.StatusDraft, model.StatusFailed)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// FinishSend records the terminal status and the aggregated counters in one
// statement.
func (r *CampaignRepository) FinishSend(id, status string, successful, failed int) error {
	query := `
        UPDATE campaigns
        SET status=$1, successful_sends=$2, failed_sends=$3, sent_at=$4, updated_at=$4
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, status, successful, failed, time.Now().UTC(), id)
	return err
}

// ForceStatus is the repair write used when the send loop dies unexpectedly:
// the campaign must never stay in "sending" after the operation returns.
func (r *CampaignRepository) ForceStatus(id, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now().UTC(), id)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
