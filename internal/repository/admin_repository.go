// internal/repository/admin_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
)

// AdminRepositoryInterface covers admin users plus their magic-link tokens;
// the two tables only ever change together during login.
type AdminRepositoryInterface interface {
	GetUserByEmail(email string) (*model.AdminUser, error)
	GetUserByID(id string) (*model.AdminUser, error)
	ListUserEmails() ([]string, error)
	TouchLastLogin(id string) error

	InsertToken(t *model.MagicLinkToken) error
	GetToken(token string) (*model.MagicLinkToken, error)
	MarkTokenUsed(token string) error
}

type AdminRepository struct {
	DB *sql.DB
}

func (r *AdminRepository) GetUserByEmail(email string) (*model.AdminUser, error) {
	query := `SELECT id, email, name, created_at, last_login FROM admin_users WHERE email=$1`
	var u model.AdminUser
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepository) GetUserByID(id string) (*model.AdminUser, error) {
	query := `SELECT id, email, name, created_at, last_login FROM admin_users WHERE id=$1`
	var u model.AdminUser
	err := r.DB.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepository) ListUserEmails() ([]string, error) {
	rows, err := r.DB.Query(`SELECT email FROM admin_users`)
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

func (r *AdminRepository) TouchLastLogin(id string) error {
	_, err := r.DB.Exec(`UPDATE admin_users SET last_login=$1 WHERE id=$2`, time.Now().UTC(), id)
	return err
}

func (r *AdminRepository) InsertToken(t *model.MagicLinkToken) error {
	query := `
        INSERT INTO magic_link_tokens (token, user_id, expires_at, used, created_at)
        VALUES ($1, $2, $3, FALSE, $4)
    `
	_, err := r.DB.Exec(query, t.Token, t.UserID, t.ExpiresAt, t.CreatedAt)
	return err
}

func (r *AdminRepository) GetToken(token string) (*model.MagicLinkToken, error) {
	query := `SELECT token, user_id, expires_at, used, created_at FROM magic_link_tokens WHERE token=$1`
	var t model.MagicLinkToken
	err := r.DB.QueryRow(query, token).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *AdminRepository) MarkTokenUsed(token string) error {
	_, err := r.DB.Exec(`UPDATE magic_link_tokens SET used=TRUE WHERE token=$1`, token)
	return err
}

var _ AdminRepositoryInterface = (*AdminRepository)(nil)
