// Package api provides the HTTP surface external collaborators use: price
// fetchers and the scheduler write through it, reporting/alerting UIs read
// through it.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/portfolio-tracker/internal/usecase/catalog"
	"github.com/portfolio-tracker/internal/usecase/holdings"
	"github.com/portfolio-tracker/internal/usecase/ledger"
	"github.com/portfolio-tracker/internal/usecase/pricefeed"
	"github.com/portfolio-tracker/internal/usecase/snapshot"
	"github.com/portfolio-tracker/internal/usecase/watchlist"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	AuthToken    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server represents the HTTP API server
type Server struct {
	router     *mux.Router
	httpServer *http.Server

	CatalogService   *catalog.CatalogService
	LedgerService    *ledger.LedgerService
	HoldingsService  *holdings.HoldingsService
	SnapshotService  *snapshot.SnapshotService
	PriceFeedService *pricefeed.PriceFeedService
	WatchlistService *watchlist.WatchlistService
}

// NewServer creates a new API server instance
func NewServer(
	config *ServerConfig,
	catalogService *catalog.CatalogService,
	ledgerService *ledger.LedgerService,
	holdingsService *holdings.HoldingsService,
	snapshotService *snapshot.SnapshotService,
	priceFeedService *pricefeed.PriceFeedService,
	watchlistService *watchlist.WatchlistService,
) *Server {
	s := &Server{
		router:           mux.NewRouter(),
		CatalogService:   catalogService,
		LedgerService:    ledgerService,
		HoldingsService:  holdingsService,
		SnapshotService:  snapshotService,
		PriceFeedService: priceFeedService,
		WatchlistService: watchlistService,
	}

	s.routes(config.AuthToken)

	readTimeout := config.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 15 * time.Second
	}
	writeTimeout := config.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 15 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	return s
}

func (s *Server) routes(authToken string) {
	s.router.Use(RecoveryMiddleware)
	s.router.Use(LoggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	v1.Use(AuthMiddleware(authToken))

	v1.HandleFunc("/assets", s.handleListAssets).Methods(http.MethodGet)
	v1.HandleFunc("/assets", s.handleUpsertAsset).Methods(http.MethodPost)
	v1.HandleFunc("/assets/{symbol}", s.handleGetAsset).Methods(http.MethodGet)
	v1.HandleFunc("/assets/{symbol}/price", s.handleRefreshPrice).Methods(http.MethodPut)

	v1.HandleFunc("/transactions", s.handleRecordTransaction).Methods(http.MethodPost)
	v1.HandleFunc("/transactions", s.handleListTransactions).Methods(http.MethodGet)

	v1.HandleFunc("/holdings", s.handleListHoldings).Methods(http.MethodGet)
	v1.HandleFunc("/holdings/recompute", s.handleRecomputeAll).Methods(http.MethodPost)
	v1.HandleFunc("/holdings/{symbol}/recompute", s.handleRecompute).Methods(http.MethodPost)

	v1.HandleFunc("/snapshots", s.handleRecordSnapshots).Methods(http.MethodPost)
	v1.HandleFunc("/snapshots", s.handleListSnapshots).Methods(http.MethodGet)

	v1.HandleFunc("/prices", s.handleRecordPrice).Methods(http.MethodPost)
	v1.HandleFunc("/prices/{symbol}", s.handlePriceHistory).Methods(http.MethodGet)

	v1.HandleFunc("/watchlist", s.handleAddWatchlistItem).Methods(http.MethodPost)
	v1.HandleFunc("/watchlist", s.handleListWatchlist).Methods(http.MethodGet)
	v1.HandleFunc("/watchlist/alerts", s.handleEvaluateAlerts).Methods(http.MethodGet)
	v1.HandleFunc("/watchlist/{id}", s.handleRemoveWatchlistItem).Methods(http.MethodDelete)
	v1.HandleFunc("/watchlist/{id}/alerts", s.handleSetAlertsActive).Methods(http.MethodPut)
}

// Handler exposes the configured router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for requests
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
