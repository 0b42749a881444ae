// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	Log             *zap.SugaredLogger
}

func (c *CampaignController) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.CampaignService.List()
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondData(w, http.StatusOK, campaigns)
}

func (c *CampaignController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Subject     string  `json:"subject"`
		PreviewText *string `json:"preview_text"`
		Content     string  `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	campaign, err := c.CampaignService.Create(body.Subject, body.PreviewText, body.Content)
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondData(w, http.StatusCreated, campaign)
}

func (c *CampaignController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Subject     string  `json:"subject"`
		PreviewText *string `json:"preview_text"`
		Content     string  `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.CampaignService.Update(id, body.Subject, body.PreviewText, body.Content); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Campaign updated", nil)
}

func (c *CampaignController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.CampaignService.Delete(chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Campaign deleted", nil)
}

// Send handles POST /api/admin/campaigns/{id}/send. A testEmail in the body
// short-circuits the broadcast: one test-marked email goes out and campaign
// status stays untouched.
func (c *CampaignController) Send(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		TestEmail string `json:"testEmail"`
	}
	// Body is optional; a missing or malformed one means a full send.
	_ = json.NewDecoder(r.Body).Decode(&body)

	if body.TestEmail != "" {
		if err := c.CampaignService.SendSingleTest(r.Context(), id, body.TestEmail); err != nil {
			respondDomainError(w, c.Log, err)
			return
		}
		respondSuccess(w, http.StatusOK, "Test email sent to "+body.TestEmail, nil)
		return
	}

	result, err := c.CampaignService.Send(r.Context(), id)
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, result.Message, result)
}

// SendTest handles POST /api/admin/campaigns/{id}/send-test: a test broadcast
// to every admin user.
func (c *CampaignController) SendTest(w http.ResponseWriter, r *http.Request) {
	result, err := c.CampaignService.SendTest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, result.Message, result)
}
