package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/apperrors"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/auth"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/model"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/service"
)

func newAuthService(t *testing.T, adminRepo *mockAdminRepo, sender *fakeSender) *service.AuthService {
	t.Helper()
	return &service.AuthService{
		AdminRepo:    adminRepo,
		Sender:       sender,
		Tokens:       auth.NewTokenManager("test-secret", time.Hour),
		Log:          zaptest.NewLogger(t).Sugar(),
		AdminURL:     "https://admin.example.com",
		MagicLinkTTL: 15 * time.Minute,
	}
}

func adminUser() *model.AdminUser {
	return &model.AdminUser{ID: "u1", Email: "admin@example.com"}
}

func TestRequestMagicLink_UnknownEmail(t *testing.T) {
	adminRepo := newMockAdminRepo()
	sender := &fakeSender{}
	svc := newAuthService(t, adminRepo, sender)

	err := svc.RequestMagicLink(context.Background(), "nobody@example.com")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, sender.sent)
	assert.Empty(t, adminRepo.tokens)
}

func TestRequestMagicLink_InvalidEmail(t *testing.T) {
	svc := newAuthService(t, newMockAdminRepo(), &fakeSender{})

	for _, email := range []string{"", "not-an-email", "a b@example.com", "user@nodot"} {
		err := svc.RequestMagicLink(context.Background(), email)
		assert.True(t, apperrors.IsValidation(err), "email %q should be rejected", email)
	}
}

func TestRequestMagicLink_IssuesTokenAndSendsEmail(t *testing.T) {
	adminRepo := newMockAdminRepo()
	adminRepo.user = adminUser()
	sender := &fakeSender{}
	svc := newAuthService(t, adminRepo, sender)

	// Mixed case and whitespace normalize to the stored email.
	err := svc.RequestMagicLink(context.Background(), "  Admin@Example.com ")
	require.NoError(t, err)

	require.Len(t, adminRepo.tokens, 1)
	var issued *model.MagicLinkToken
	for _, tok := range adminRepo.tokens {
		issued = tok
	}
	assert.Len(t, issued.Token, 32)
	assert.Equal(t, "u1", issued.UserID)
	assert.False(t, issued.Used)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), issued.ExpiresAt, 5*time.Second)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "admin@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, "https://admin.example.com/auth/verify?token="+issued.Token)
}

func TestRequestMagicLink_SendFailureSurfaces(t *testing.T) {
	adminRepo := newMockAdminRepo()
	adminRepo.user = adminUser()
	svc := newAuthService(t, adminRepo, &fakeSender{failAll: true})

	err := svc.RequestMagicLink(context.Background(), "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestVerifyMagicLink_Success(t *testing.T) {
	adminRepo := newMockAdminRepo()
	adminRepo.user = adminUser()
	adminRepo.tokens["tok123"] = &model.MagicLinkToken{
		Token:     "tok123",
		UserID:    "u1",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}
	svc := newAuthService(t, adminRepo, &fakeSender{})

	result, err := svc.VerifyMagicLink(context.Background(), "tok123")
	require.NoError(t, err)

	assert.Equal(t, "u1", result.User.ID)
	claims := svc.Tokens.Verify(result.Token)
	require.NotNil(t, claims, "session token must verify with the same manager")
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)

	assert.True(t, adminRepo.tokens["tok123"].Used)
	assert.Equal(t, []string{"u1"}, adminRepo.lastLogins)
}

func TestVerifyMagicLink_SecondRedemptionIsGone(t *testing.T) {
	adminRepo := newMockAdminRepo()
	adminRepo.user = adminUser()
	adminRepo.tokens["tok123"] = &model.MagicLinkToken{
		Token:     "tok123",
		UserID:    "u1",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
	}
	svc := newAuthService(t, adminRepo, &fakeSender{})

	_, err := svc.VerifyMagicLink(context.Background(), "tok123")
	require.NoError(t, err)

	_, err = svc.VerifyMagicLink(context.Background(), "tok123")
	assert.True(t, apperrors.IsGone(err))
}

func TestVerifyMagicLink_Expired(t *testing.T) {
	adminRepo := newMockAdminRepo()
	adminRepo.user = adminUser()
	adminRepo.tokens["tok123"] = &model.MagicLinkToken{
		Token:     "tok123",
		UserID:    "u1",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	svc := newAuthService(t, adminRepo, &fakeSender{})

	_, err := svc.VerifyMagicLink(context.Background(), "tok123")
	assert.True(t, apperrors.IsGone(err))
	assert.False(t, adminRepo.tokens["tok123"].Used)
}

func TestVerifyMagicLink_UnknownToken(t *testing.T) {
	svc := newAuthService(t, newMockAdminRepo(), &fakeSender{})

	_, err := svc.VerifyMagicLink(context.Background(), "never-issued")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestVerifyMagicLink_EmptyToken(t *testing.T) {
	svc := newAuthService(t, newMockAdminRepo(), &fakeSender{})

	_, err := svc.VerifyMagicLink(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}
