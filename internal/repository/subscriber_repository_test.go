package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriberRepo(t *testing.T) (*SubscriberRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &SubscriberRepository{DB: db}, mock
}

func subscriberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "name", "subscribed", "subscribed_at", "unsubscribed_at", "unsubscribe_token",
	})
}

func TestSubscriberList_SortWhitelist(t *testing.T) {
	repo, mock := newSubscriberRepo(t)

	// Hostile sort input never reaches the SQL text: unknown columns fall
	// back to subscribed_at DESC.
	mock.ExpectQuery(`SELECT .+ FROM subscribers WHERE subscribed = TRUE ORDER BY subscribed_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(25, 0).
		WillReturnRows(subscriberRows())
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subscribers WHERE subscribed = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(0, 25, "", "email; DROP TABLE subscribers", "ASC); --")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberList_SearchAndSort(t *testing.T) {
	repo, mock := newSubscriberRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM subscribers WHERE subscribed = TRUE AND \(email ILIKE \$1 OR name ILIKE \$2\) ORDER BY email ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("%ana%", "%ana%", 10, 20).
		WillReturnRows(subscriberRows().AddRow("s1", "ana@example.com", nil, true, now, nil, "tok"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subscribers WHERE subscribed = TRUE AND \(email ILIKE \$1 OR name ILIKE \$2\)`).
		WithArgs("%ana%", "%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	subscribers, total, err := repo.List(20, 10, "ana", "email", "asc")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "ana@example.com", subscribers[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberGetByEmail_NoRowIsNil(t *testing.T) {
	repo, mock := newSubscriberRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM subscribers WHERE email=\$1`).
		WithArgs("nadie@example.com").
		WillReturnRows(subscriberRows())

	sub, err := repo.GetByEmail("nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberResubscribe(t *testing.T) {
	repo, mock := newSubscriberRepo(t)

	mock.ExpectExec(`(?s)UPDATE subscribers\s+SET subscribed = TRUE, subscribed_at = \$1, unsubscribed_at = NULL\s+WHERE email = \$2`).
		WithArgs(sqlmock.AnyArg(), "volvi@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Resubscribe("volvi@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberUnsubscribe(t *testing.T) {
	repo, mock := newSubscriberRepo(t)

	mock.ExpectExec(`UPDATE subscribers SET subscribed = FALSE, unsubscribed_at = \$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Unsubscribe("s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveEmails(t *testing.T) {
	repo, mock := newSubscriberRepo(t)

	mock.ExpectQuery(`SELECT email FROM subscribers WHERE subscribed = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("a@example.com").
			AddRow("b@example.com"))

	emails, err := repo.ActiveEmails()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}
