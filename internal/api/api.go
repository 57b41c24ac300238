package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lsta-labs/dealdesk/internal/config"
	"github.com/lsta-labs/dealdesk/internal/negotiation"
	"github.com/lsta-labs/dealdesk/internal/resolve"
	"github.com/lsta-labs/dealdesk/internal/snapshot"
	"github.com/rs/cors"
)

type API struct {
	router       *mux.Router
	config       *config.Config
	negotiations *negotiation.Service
	orchestrator *resolve.Orchestrator
	persister    *snapshot.Persister // nil when no database is configured
}

func New(cfg *config.Config, svc *negotiation.Service, orch *resolve.Orchestrator, persister *snapshot.Persister) *API {
	api := &API{
		router:       mux.NewRouter(),
		config:       cfg,
		negotiations: svc,
		orchestrator: orch,
		persister:    persister,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Market benchmark endpoints
	a.router.HandleFunc("/api/market/stats", a.handleMarketStats).Methods("GET")
	a.router.HandleFunc("/api/market/comparables", a.handleComparables).Methods("GET")
	a.router.HandleFunc("/api/market/comparables/export", a.handleComparablesExport).Methods("GET")

	// Deal and negotiations
	a.router.HandleFunc("/api/deal", a.handleDeal).Methods("GET")
	a.router.HandleFunc("/api/deal/circulate", a.handleCirculate).Methods("POST")
	a.router.HandleFunc("/api/negotiations", a.handleListNegotiations).Methods("GET")
	a.router.HandleFunc("/api/negotiations/{id}", a.handleGetNegotiation).Methods("GET")
	a.router.HandleFunc("/api/negotiations/{id}/classification", a.handleClassification).Methods("GET")
	a.router.HandleFunc("/api/negotiations/{id}/resolve", a.handleResolve).Methods("POST")
	a.router.HandleFunc("/api/negotiations/{id}/accept", a.handleAccept).Methods("POST")
	a.router.HandleFunc("/api/negotiations/{id}/modify", a.handleModify).Methods("POST")

	// Audit log
	a.router.HandleFunc("/api/activities", a.handleActivities).Methods("GET")
}

func (a *API) Start() error {
	// Setup CORS - allow all origins for development, restrict in production
	// Note: When AllowedOrigins is "*", AllowCredentials must be false for security
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	log.Printf("API server listening on http://%s", a.config.WebBind)
	return http.ListenAndServe(a.config.WebBind, handler)
}
