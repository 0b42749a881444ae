package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
)

func newCampaignRepo(t *testing.T) (*CampaignRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &CampaignRepository{DB: db}, mock
}

func campaignRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "subject", "preview_text", "content", "status",
		"total_recipients", "successful_sends", "failed_sends",
		"sent_at", "created_at", "updated_at",
	})
}

func TestCampaignGetByID(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)SELECT .+ FROM campaigns WHERE id=\$1`).
		WithArgs("c1").
		WillReturnRows(campaignRows().AddRow(
			"c1", "Hello", nil, "<p>Hi</p>", model.StatusDraft,
			0, 0, 0, nil, now, now,
		))

	campaign, err := repo.GetByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", campaign.Subject)
	assert.Equal(t, model.StatusDraft, campaign.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignGetByID_NotFound(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM campaigns WHERE id=\$1`).
		WithArgs("ghost").
		WillReturnRows(campaignRows())

	_, err := repo.GetByID("ghost")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSending_WinsTheRace(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	mock.ExpectExec(`(?s)UPDATE campaigns\s+SET status=\$1, total_recipients=\$2, updated_at=\$3\s+WHERE id=\$4 AND status IN \(\$5, \$6\)`).
		WithArgs(model.StatusSending, 42, sqlmock.AnyArg(), "c1", model.StatusDraft, model.StatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkSending("c1", 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSending_LosesTheRace(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	// Status was already flipped by a concurrent request: zero rows touched.
	mock.ExpectExec(`(?s)UPDATE campaigns\s+SET status=\$1, total_recipients=\$2, updated_at=\$3\s+WHERE id=\$4 AND status IN \(\$5, \$6\)`).
		WithArgs(model.StatusSending, 42, sqlmock.AnyArg(), "c1", model.StatusDraft, model.StatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.MarkSending("c1", 42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishSend(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	mock.ExpectExec(`(?s)UPDATE campaigns\s+SET status=\$1, successful_sends=\$2, failed_sends=\$3, sent_at=\$4, updated_at=\$4\s+WHERE id=\$5`).
		WithArgs(model.StatusSent, 40, 2, sqlmock.AnyArg(), "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.FinishSend("c1", model.StatusSent, 40, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForceStatus(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	mock.ExpectExec(`UPDATE campaigns SET status=\$1, updated_at=\$2 WHERE id=\$3`).
		WithArgs(model.StatusFailed, sqlmock.AnyArg(), "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ForceStatus("c1", model.StatusFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignCreate_FillsDefaults(t *testing.T) {
	repo, mock := newCampaignRepo(t)

	mock.ExpectExec("INSERT INTO campaigns").
		WithArgs(sqlmock.AnyArg(), "Hello", nil, "<p>Hi</p>", model.StatusDraft, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := &model.Campaign{Subject: "Hello", Content: "<p>Hi</p>"}
	require.NoError(t, repo.Create(c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, model.StatusDraft, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
