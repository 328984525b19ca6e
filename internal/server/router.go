// Package server assembles the portal's HTTP routes.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/live"
	"github.com/matheustorresii/vitrine-sorocabana/internal/metrics"
	"github.com/matheustorresii/vitrine-sorocabana/internal/middleware"
	"github.com/matheustorresii/vitrine-sorocabana/internal/pages"
	"github.com/matheustorresii/vitrine-sorocabana/internal/services"
)

type Deps struct {
	Pages    *pages.Handler
	Services *services.Handler
	Hub      *live.Hub
	Metrics  *metrics.Metrics
	Limiter  *middleware.RateLimiter
	Log      logrus.FieldLogger
}

// NewRouter wires every route. Hub, Metrics and Limiter are optional.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/", d.Pages.Home).Methods(http.MethodGet)
	r.HandleFunc("/loja", d.Pages.Loja).Methods(http.MethodGet)
	r.HandleFunc("/blog", d.Pages.Blog).Methods(http.MethodGet)
	r.HandleFunc("/servicos", d.Pages.Servicos).Methods(http.MethodGet)
	r.HandleFunc("/admin", d.Pages.Admin).Methods(http.MethodGet)

	admin := r.PathPrefix("/admin/servicos").Methods(http.MethodPost).Subrouter()
	if d.Limiter != nil {
		admin.Use(d.Limiter.Handler)
	}
	admin.HandleFunc("", d.Pages.SaveService)
	admin.HandleFunc("/{id:[0-9]+}", d.Pages.SaveService)
	admin.HandleFunc("/{id:[0-9]+}/excluir", d.Pages.DeleteService)

	r.HandleFunc("/api/servicos", d.Services.ServicesCollection)
	r.HandleFunc("/api/servicos/{id}", d.Services.ServicesItem)

	if d.Hub != nil {
		r.HandleFunc("/ws/servicos", d.Hub.ServeWS).Methods(http.MethodGet)
	}
	r.PathPrefix("/static/").Handler(pages.StaticHandler()).Methods(http.MethodGet)
	return r
}
