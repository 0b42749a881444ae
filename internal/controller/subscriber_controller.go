// internal/controller/subscriber_controller.go
package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/service"
)

type SubscriberController struct {
	SubscriberService *service.SubscriberService
	Log               *zap.SugaredLogger
}

func (c *SubscriberController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := c.SubscriberService.List(page, limit, q.Get("search"), q.Get("sortBy"), q.Get("sortOrder"))
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Subscribers retrieved successfully", result)
}

func (c *SubscriberController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.SubscriberService.Stats()
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Stats retrieved successfully", stats)
}

func (c *SubscriberController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.SubscriberService.Delete(chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Subscriber deleted successfully", nil)
}

// Subscribe handles the public POST /api/newsletter/subscribe.
func (c *SubscriberController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.SubscriberService.Subscribe(r.Context(), body.Email, body.Name); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "¡Gracias por suscribirte! Revisa tu correo para confirmar.", nil)
}

// Unsubscribe handles the public POST /api/newsletter/unsubscribe.
func (c *SubscriberController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.SubscriberService.Unsubscribe(body.Token); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Unsubscribed successfully", nil)
}

// Export streams the active subscriber list as a CSV attachment. This is the
// one JSON-less admin endpoint.
func (c *SubscriberController) Export(w http.ResponseWriter, r *http.Request) {
	data, filename, err := c.SubscriberService.ExportCSV()
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
