package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/handlers"
	mw "github.com/baechuer/real-time-ressys/services/barter-service/internal/transport/http/middleware"
)

type Handlers struct {
	Listings      *handlers.ListingsHandler
	Me            *handlers.MeHandler
	Ratings       *handlers.RatingsHandler
	Suggestions   *handlers.SuggestionsHandler
	Subscription  *handlers.SubscriptionHandler
	Conversations *handlers.ConversationsHandler
	Health        *handlers.HealthHandler
}

func New(h Handlers, auth *mw.AuthMiddleware, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.AccessLog)
	r.Use(mw.Metrics)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.MetricsHandler())

	r.Route("/barter/v1", func(r chi.Router) {
		// public reads; a token, when present, identifies the caller
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Get("/listings", h.Listings.Search)
			r.Get("/listings/{listing_id}", h.Listings.Get)
			r.Get("/categories/{category}/listings", h.Listings.ByCategory)
			r.Get("/users/{user_id}/ratings", h.Ratings.UserRatings)
			r.Get("/users/{user_id}/rating", h.Ratings.UserAverage)
			r.Get("/users/{user_id}/badges", h.Ratings.UserBadges)
			r.Get("/plans", h.Subscription.Plans)
			r.Get("/plans/{plan_id}", h.Subscription.Plan)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/listings", h.Listings.Create)
			r.Patch("/listings/{listing_id}", h.Listings.Update)
			r.Delete("/listings/{listing_id}", h.Listings.Delete)
			r.Post("/listings/{listing_id}/interest", h.Listings.ShowInterest)

			r.Post("/ratings", h.Ratings.Rate)
			r.Delete("/ratings/{rating_id}", h.Ratings.Remove)

			r.Route("/me", func(r chi.Router) {
				r.Get("/listings", h.Listings.Mine)

				r.Get("/favorites", h.Me.Favorites)
				r.Get("/favorites/{listing_id}", h.Me.IsFavorite)
				r.Put("/favorites/{listing_id}", h.Me.AddFavorite)
				r.Delete("/favorites/{listing_id}", h.Me.RemoveFavorite)
				r.Post("/favorites/{listing_id}/toggle", h.Me.ToggleFavorite)

				r.Get("/search-history", h.Me.SearchHistory)
				r.Get("/preferences", h.Me.Preferences)
				r.Get("/stats", h.Me.Stats)
				r.Get("/stats/advanced", h.Me.AdvancedStats)

				r.Get("/suggestions", h.Suggestions.List)
				r.Get("/suggestions/top", h.Suggestions.Top)
				r.Post("/suggestions/regenerate", h.Suggestions.Regenerate)
				r.Post("/suggestions/{suggestion_id}/viewed", h.Suggestions.MarkViewed)

				r.Get("/subscription", h.Subscription.Current)
				r.Post("/subscription/upgrade", h.Subscription.Upgrade)
				r.Post("/subscription/cancel", h.Subscription.Cancel)
				r.Get("/entitlements/{action}", h.Subscription.Entitlement)
			})

			r.Post("/conversations", h.Conversations.Start)
			r.Get("/conversations", h.Conversations.List)
			r.Get("/conversations/{conversation_id}/messages", h.Conversations.Messages)
			r.Post("/conversations/{conversation_id}/messages", h.Conversations.Send)
			r.Post("/conversations/{conversation_id}/read", h.Conversations.MarkRead)
			r.Post("/conversations/{conversation_id}/validate", h.Conversations.ValidateExchange)
		})
	})

	return r
}
