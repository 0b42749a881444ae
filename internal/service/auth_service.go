// internal/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/auth"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/mailer"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type AuthService struct {
	AdminRepo repository.AdminRepositoryInterface
	Sender    mailer.Sender
	Tokens    *auth.TokenManager
	Log       *zap.SugaredLogger

	AdminURL     string
	MagicLinkTTL time.Duration
}

// LoginResult is what a successful magic-link redemption returns: a session
// token plus the user it belongs to.
type LoginResult struct {
	Token string           `json:"token"`
	User  *model.AdminUser `json:"user"`
}

// RequestMagicLink issues a single-use login token for a known admin email
// and mails the verification link. Unknown emails get a NotFound; this
// endpoint never creates accounts.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.NewValidation("Email is required")
	}
	if !ValidEmail(email) {
		return apperrors.NewValidation("Invalid email format")
	}

	user, err := s.AdminRepo.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("admin user", "")
	}

	token, err := newLoginToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(s.MagicLinkTTL)
	if err := s.AdminRepo.InsertToken(&model.MagicLinkToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	minutes := int(s.MagicLinkTTL.Minutes())
	magicLink := fmt.Sprintf("%s/auth/verify?token=%s", s.AdminURL, token)

	if err := s.Sender.Send(ctx, mailer.Email{
		To:      email,
		Subject: "Tu enlace de acceso - BIDXAAGUI",
		HTML:    mailer.MagicLinkEmailHTML(magicLink, minutes),
		Text:    mailer.MagicLinkEmailText(magicLink, minutes),
	}); err != nil {
		s.Log.Errorw("failed to send magic link email", "email", email, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.Log.Infow("magic link issued", "user_id", user.ID)
	return nil
}

// VerifyMagicLink redeems a magic-link token for a session token. A token is
// valid exactly once: redemption marks it used before the session is issued,
// so the second redemption of the same token always gets a Gone error.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token string) (*LoginResult, error) {
	if token == "" {
		return nil, apperrors.NewValidation("Token is required")
	}

	magicToken, err := s.AdminRepo.GetToken(token)
	if err != nil {
		return nil, err
	}
	if magicToken == nil {
		return nil, apperrors.NewNotFound("magic link", "")
	}

	if magicToken.Used {
		return nil, apperrors.NewGone("Magic link already used. Please request a new one.")
	}
	if magicToken.Expired(time.Now().UTC()) {
		return nil, apperrors.NewGone("Magic link expired. Please request a new one.")
	}

	user, err := s.AdminRepo.GetUserByID(magicToken.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("admin user", magicToken.UserID)
	}

	if err := s.AdminRepo.MarkTokenUsed(token); err != nil {
		return nil, err
	}
	if err := s.AdminRepo.TouchLastLogin(user.ID); err != nil {
		s.Log.Warnw("failed to update last login", "user_id", user.ID, "error", err)
	}

	sessionToken, err := s.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.Log.Infow("admin logged in", "user_id", user.ID)
	return &LoginResult{Token: sessionToken, User: user}, nil
}

// newLoginToken returns a 32-character random token for the magic link.
func newLoginToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
