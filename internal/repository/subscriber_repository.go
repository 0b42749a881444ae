// internal/repository/subscriber_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
)

type SubscriberRepositoryInterface interface {
	List(offset, limit int, search, sortBy, sortOrder string) ([]model.Subscriber, int, error)
	GetByID(id string) (*model.Subscriber, error)
	GetByEmail(email string) (*model.Subscriber, error)
	GetByUnsubscribeToken(token string) (*model.Subscriber, error)
	Insert(s *model.Subscriber) error
	Resubscribe(email string) error
	Unsubscribe(id string) error
	Delete(id string) error
	ActiveEmails() ([]string, error)
	Stats() (*model.SubscriberStats, error)
	ExportRows() ([]model.Subscriber, error)
}

type SubscriberRepository struct {
	DB *sql.DB
}

const subscriberColumns = `id, email, name, subscribed, subscribed_at, unsubscribed_at, unsubscribe_token`

func scanSubscriber(row interface{ Scan(...any) error }) (*model.Subscriber, error) {
	var s model.Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Subscribed, &s.SubscribedAt, &s.UnsubscribedAt, &s.UnsubscribeToken)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Sort input comes straight off the query string, so both column and order go
// through a whitelist before touching the SQL text.
var sortableColumns = map[string]bool{
	"email":         true,
	"name":          true,
	"subscribed_at": true,
}

func (r *SubscriberRepository) List(offset, limit int, search, sortBy, sortOrder string) ([]model.Subscriber, int, error) {
	if !sortableColumns[sortBy] {
		sortBy = "subscribed_at"
	}
	if !strings.EqualFold(sortOrder, "ASC") {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE subscribed = TRUE`
	args := []any{}
	argPos := 1

	if search != "" {
		query += fmt.Sprintf(" AND (email ILIKE $%d OR name ILIKE $%d)", argPos, argPos+1)
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortBy, sortOrder, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, 0, err
		}
		subscribers = append(subscribers, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM subscribers WHERE subscribed = TRUE`
	countArgs := []any{}
	if search != "" {
		countQuery += ` AND (email ILIKE $1 OR name ILIKE $2)`
		pattern := "%" + search + "%"
		countArgs = append(countArgs, pattern, pattern)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}

func (r *SubscriberRepository) GetByID(id string) (*model.Subscriber, error) {
	row := r.DB.QueryRow(`SELECT `+subscriberColumns+` FROM subscribers WHERE id=$1`, id)
	s, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func (r *SubscriberRepository) GetByEmail(email string) (*model.Subscriber, error) {
	row := r.DB.QueryRow(`SELECT `+subscriberColumns+` FROM subscribers WHERE email=$1`, email)
	s, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func (r *SubscriberRepository) GetByUnsubscribeToken(token string) (*model.Subscriber, error) {
	row := r.DB.QueryRow(`SELECT `+subscriberColumns+` FROM subscribers WHERE unsubscribe_token=$1`, token)
	s, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func (r *SubscriberRepository) Insert(s *model.Subscriber) error {
	query := `
        INSERT INTO subscribers (id, email, name, subscribed, subscribed_at, unsubscribe_token)
        VALUES ($1, $2, $3, TRUE, $4, $5)
    `
	_, err := r.DB.Exec(query, s.ID, s.Email, s.Name, s.SubscribedAt, s.UnsubscribeToken)
	return err
}

// Resubscribe flips a previously unsubscribed row back to active in place.
// There is never a second row per email.
func (r *SubscriberRepository) Resubscribe(email string) error {
	query := `
        UPDATE subscribers
        SET subscribed = TRUE, subscribed_at = $1, unsubscribed_at = NULL
        WHERE email = $2
    `
	_, err := r.DB.Exec(query, time.Now().UTC(), email)
	return err
}

// Unsubscribe is the soft delete: the row stays, subscribed goes false.
func (r *SubscriberRepository) Unsubscribe(id string) error {
	query := `UPDATE subscribers SET subscribed = FALSE, unsubscribed_at = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, time.Now().UTC(), id)
	return err
}

func (r *SubscriberRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM subscribers WHERE id=$1`, id)
	return err
}

func (r *SubscriberRepository) ActiveEmails() ([]string, error) {
	rows, err := r.DB.Query(`SELECT email FROM subscribers WHERE subscribed = TRUE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *SubscriberRepository) Stats() (*model.SubscriberStats, error) {
	stats := &model.SubscriberStats{RecentGrowth: []model.DailyGrowth{}}

	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM subscribers WHERE subscribed = TRUE`,
	).Scan(&stats.Total)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(
		`SELECT COUNT(*) FROM subscribers
         WHERE subscribed = TRUE
         AND date_trunc('month', subscribed_at) = date_trunc('month', NOW())`,
	).Scan(&stats.ThisMonth)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(
		`SELECT COUNT(*) FROM subscribers
         WHERE subscribed = TRUE
         AND date_trunc('month', subscribed_at) = date_trunc('month', NOW() - INTERVAL '1 month')`,
	).Scan(&stats.LastMonth)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(
		`SELECT DATE(subscribed_at) AS date, COUNT(*) AS count
         FROM subscribers
         WHERE subscribed = TRUE AND subscribed_at >= NOW() - INTERVAL '7 days'
         GROUP BY DATE(subscribed_at)
         ORDER BY date ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var g model.DailyGrowth
		var day time.Time
		if err := rows.Scan(&day, &g.Count); err != nil {
			return nil, err
		}
		g.Date = day.Format("2006-01-02")
		stats.RecentGrowth = append(stats.RecentGrowth, g)
	}
	return stats, rows.Err()
}

func (r *SubscriberRepository) ExportRows() ([]model.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE subscribed = TRUE ORDER BY subscribed_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subscribers = append(subscribers, *s)
	}
	return subscribers, rows.Err()
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
