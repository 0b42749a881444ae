// internal/controller/router.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/auth"
)

// NewRouter wires the full HTTP surface: public auth/newsletter/edition
// routes, the admin API behind the session gate, and image streaming.
func NewRouter(
	production bool,
	adminURL string,
	tokens *auth.TokenManager,
	authCtrl *AuthController,
	subscriberCtrl *SubscriberController,
	editionCtrl *EditionController,
	campaignCtrl *CampaignController,
) http.Handler {
	r := chi.NewRouter()
	r.Use(CORS(production, adminURL))

	r.Get("/api/health", authCtrl.Health)

	// Public routes
	r.Post("/api/auth/magic-link/request", authCtrl.RequestMagicLink)
	r.Get("/api/auth/magic-link/verify", authCtrl.VerifyMagicLink)
	r.Post("/api/newsletter/subscribe", subscriberCtrl.Subscribe)
	r.Post("/api/newsletter/unsubscribe", subscriberCtrl.Unsubscribe)
	r.Get("/api/ediciones", editionCtrl.List)
	r.Get("/api/ediciones/{id}/pages", editionCtrl.ListPages)
	r.Get("/api/images/*", editionCtrl.ServeImage)

	// Admin routes
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(RequireAuth(tokens))

		r.Get("/subscribers", subscriberCtrl.List)
		r.Get("/subscribers/stats", subscriberCtrl.Stats)
		r.Get("/subscribers/export", subscriberCtrl.Export)
		r.Delete("/subscribers/{id}", subscriberCtrl.Delete)

		r.Get("/editions", editionCtrl.List)
		r.Post("/editions", editionCtrl.Create)
		r.Delete("/editions/{id}", editionCtrl.Delete)
		r.Post("/editions/{id}/pages", editionCtrl.UploadPage)
		r.Get("/editions/{id}/pages", editionCtrl.ListPages)

		r.Get("/campaigns", campaignCtrl.List)
		r.Post("/campaigns", campaignCtrl.Create)
		r.Put("/campaigns/{id}", campaignCtrl.Update)
		r.Delete("/campaigns/{id}", campaignCtrl.Delete)
		r.Post("/campaigns/{id}/send", campaignCtrl.Send)
		r.Post("/campaigns/{id}/send-test", campaignCtrl.SendTest)
	})

	return r
}
