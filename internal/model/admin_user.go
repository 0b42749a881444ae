// internal/model/admin_user.go
package model

import "time"

type AdminUser struct {
	ID        string     `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Name      *string    `db:"name" json:"name,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	LastLogin *time.Time `db:"last_login" json:"last_login,omitempty"`
}

// MagicLinkToken is a single-use login token. Once redeemed (used=true) it is
// never valid again, even inside its expiry window.
type MagicLinkToken struct {
	Token     string    `db:"token" json:"token"`
	UserID    string    `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Used      bool      `db:"used" json:"used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (t *MagicLinkToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
