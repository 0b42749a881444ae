// internal/controller/auth_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/service"
)

type AuthController struct {
	AuthService *service.AuthService
	Log         *zap.SugaredLogger
	Environment string
}

// Health is the public liveness endpoint.
func (c *AuthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"message":     "BIDXAAGUI API is running",
		"environment": c.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// RequestMagicLink handles POST /api/auth/magic-link/request.
func (c *AuthController) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.AuthService.RequestMagicLink(r.Context(), body.Email); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Magic link sent! Check your email.", nil)
}

// VerifyMagicLink handles GET /api/auth/magic-link/verify?token=.
func (c *AuthController) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	result, err := c.AuthService.VerifyMagicLink(r.Context(), token)
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful", result)
}
