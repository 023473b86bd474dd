// Package server assembles the chi router of the HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/handler"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/middleware"
)

// Services are the service layer entry points the router dispatches to.
type Services struct {
	Links      service.LinkServiceIface
	Namespaces service.NamespaceIface
	Resolver   service.ResolverIface
	Analytics  service.AnalyticsIface
	Admin      service.AdminIface
	Users      service.UserIface
	Auth       service.AuthIface
}

// Options tune the router.
type Options struct {
	// RootDomain is the bare domain subdomain hosts hang off.
	RootDomain string
	// TrustedSubnet guards /internal/stats. Empty denies everyone.
	TrustedSubnet string
	// AnonymousRate throttles POST /long-url per client, e.g. "30-M".
	// Empty disables throttling.
	AnonymousRate string
}

func Init(s Services, opts Options, logger *zap.Logger) (*chi.Mux, error) {
	links := handler.NewLinks(s.Links, s.Analytics, logger)
	domains := handler.NewDomain(s.Namespaces, logger)
	admin := handler.NewAdmin(s.Admin, s.Analytics, logger)
	users := handler.NewUser(s.Users, logger)
	redirect := handler.NewRedirect(s.Resolver, opts.RootDomain, logger)

	var throttle func(http.Handler) http.Handler
	if opts.AnonymousRate != "" {
		limit, err := middleware.WithRateLimit(opts.AnonymousRate)
		if err != nil {
			return nil, err
		}
		throttle = limit
	}

	r := chi.NewRouter()
	r.Use(middleware.WithPeerAddr)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGzipRequest)
	r.Use(middleware.WithGzipResponse)

	r.Get("/ping", links.Ping)

	r.Group(func(r chi.Router) {
		if throttle != nil {
			r.Use(throttle)
		}
		r.Post("/long-url", links.Shorten)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithBearerAuth(s.Auth))

		r.Route("/links", func(r chi.Router) {
			r.Get("/", links.List)
			r.Post("/", links.Create)
			r.Put("/{id}", links.Update)
			r.Delete("/{id}", links.Delete)
			r.Get("/{id}/metrics", links.Metrics)
		})

		r.Get("/domain", domains.Get)
		r.Post("/domain", domains.Bind)
		r.Delete("/domain", domains.Unbind)

		r.Get("/user", users.Get)
		r.Put("/user", users.Rename)
		r.Delete("/user", users.Delete)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/stats", admin.Stats)
			r.Get("/users/search", admin.SearchUsers)
		})
	})

	r.With(middleware.WithTrustedSubnet(opts.TrustedSubnet)).Get("/internal/stats", admin.InternalStats)

	r.Get("/s/{subdomain}/{code}", redirect.ByPath)
	r.Get("/{code}", redirect.ByHost)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r, nil
}
