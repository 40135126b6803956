package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/portfolio-tracker/internal/domain"
	"github.com/portfolio-tracker/internal/usecase/catalog"
	"github.com/portfolio-tracker/internal/usecase/ledger"
	"github.com/portfolio-tracker/internal/usecase/watchlist"
)

const dateLayout = "2006-01-02"

// --- assets ---

type upsertAssetRequest struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	APISource   string `json:"api_source,omitempty"`
	APIID       string `json:"api_id,omitempty"`
}

func (s *Server) handleUpsertAsset(w http.ResponseWriter, r *http.Request) {
	var req upsertAssetRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	asset, created, err := s.CatalogService.UpsertAsset(r.Context(), catalog.UpsertAssetInput{
		Symbol:      req.Symbol,
		Name:        req.Name,
		Category:    domain.AssetCategory(req.Category),
		Subcategory: req.Subcategory,
		Exchange:    req.Exchange,
		APISource:   req.APISource,
		APIID:       req.APIID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, asset)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.CatalogService.GetAsset(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	category := domain.AssetCategory(r.URL.Query().Get("category"))

	assets, err := s.CatalogService.ListAssets(r.Context(), category)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

type refreshPriceRequest struct {
	Price      string `json:"price"`
	ObservedAt string `json:"observed_at,omitempty"`
}

func (s *Server) handleRefreshPrice(w http.ResponseWriter, r *http.Request) {
	var req refreshPriceRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid price format")
		return
	}

	observedAt := time.Now()
	if req.ObservedAt != "" {
		observedAt, err = time.Parse(time.RFC3339, req.ObservedAt)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "observed_at must be RFC3339")
			return
		}
	}

	if err := s.CatalogService.RefreshPrice(r.Context(), mux.Vars(r)["symbol"], price, observedAt); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// --- transactions ---

type recordTransactionRequest struct {
	Type             string `json:"type"`
	AssetSymbol      string `json:"asset_symbol"`
	Exchange         string `json:"exchange,omitempty"`
	Quantity         string `json:"quantity"`
	PricePerUnit     string `json:"price_per_unit"`
	TotalAmount      string `json:"total_amount,omitempty"`
	Fees             string `json:"fees,omitempty"`
	Notes            string `json:"notes,omitempty"`
	TransactionDate  string `json:"transaction_date"`
	PurchaseLocation string `json:"purchase_location,omitempty"`
	PurchaseTime     string `json:"purchase_time,omitempty"`
	PurchaseMethod   string `json:"purchase_method,omitempty"`
	Reference        string `json:"transaction_reference,omitempty"`
	Currency         string `json:"currency,omitempty"`
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid quantity format")
		return
	}
	pricePerUnit, err := decimal.NewFromString(req.PricePerUnit)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid price_per_unit format")
		return
	}

	fees := decimal.Zero
	if req.Fees != "" {
		if fees, err = decimal.NewFromString(req.Fees); err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid fees format")
			return
		}
	}

	var totalAmount *decimal.Decimal
	if req.TotalAmount != "" {
		total, err := decimal.NewFromString(req.TotalAmount)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid total_amount format")
			return
		}
		totalAmount = &total
	}

	date, err := time.Parse(time.RFC3339, req.TransactionDate)
	if err != nil {
		// Accept a bare calendar date as well
		date, err = time.Parse(dateLayout, req.TransactionDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "transaction_date must be RFC3339 or YYYY-MM-DD")
			return
		}
	}

	tx, err := s.LedgerService.RecordTransaction(r.Context(), ledger.RecordTransactionInput{
		Type:             domain.TransactionType(req.Type),
		AssetSymbol:      req.AssetSymbol,
		Exchange:         req.Exchange,
		Quantity:         quantity,
		PricePerUnit:     pricePerUnit,
		TotalAmount:      totalAmount,
		Fees:             fees,
		Notes:            req.Notes,
		Date:             date,
		PurchaseLocation: req.PurchaseLocation,
		PurchaseTime:     req.PurchaseTime,
		PurchaseMethod:   req.PurchaseMethod,
		Reference:        req.Reference,
		Currency:         req.Currency,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	txs, err := s.LedgerService.ListTransactions(r.Context(), limit, offset, query.Get("symbol"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

// --- holdings ---

func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	result, err := s.HoldingsService.ListHoldings(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	holding, err := s.HoldingsService.Recompute(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, holding)
}

func (s *Server) handleRecomputeAll(w http.ResponseWriter, r *http.Request) {
	result, err := s.HoldingsService.RecomputeAll(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// --- snapshots ---

type recordSnapshotsRequest struct {
	Date string `json:"date,omitempty"`
}

func (s *Server) handleRecordSnapshots(w http.ResponseWriter, r *http.Request) {
	var req recordSnapshotsRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		var err error
		if date, err = time.Parse(dateLayout, req.Date); err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "date must be YYYY-MM-DD")
			return
		}
	}

	written, err := s.SnapshotService.RecordDaily(r.Context(), date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, written)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if symbol := query.Get("symbol"); symbol != "" {
		from, to, err := parseDateRange(query.Get("from"), query.Get("to"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
			return
		}
		snaps, err := s.SnapshotService.ListBySymbol(r.Context(), symbol, from, to)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, snaps)
		return
	}

	date := time.Now()
	if d := query.Get("date"); d != "" {
		var err error
		if date, err = time.Parse(dateLayout, d); err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "date must be YYYY-MM-DD")
			return
		}
	}

	snaps, err := s.SnapshotService.ListByDate(r.Context(), date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snaps)
}

// --- prices ---

type recordPriceRequest struct {
	AssetSymbol string `json:"asset_symbol"`
	Price       string `json:"price"`
	Source      string `json:"source"`
	ObservedAt  string `json:"observed_at"`
}

type recordPriceResponse struct {
	Created bool `json:"created"`
}

func (s *Server) handleRecordPrice(w http.ResponseWriter, r *http.Request) {
	var req recordPriceRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid price format")
		return
	}
	observedAt, err := time.Parse(time.RFC3339, req.ObservedAt)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "observed_at must be RFC3339")
		return
	}

	created, err := s.PriceFeedService.RecordObservation(r.Context(), req.AssetSymbol, price, observedAt, req.Source)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, recordPriceResponse{Created: created})
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, to, err := parseDateRange(query.Get("from"), query.Get("to"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}

	points, err := s.PriceFeedService.History(r.Context(), mux.Vars(r)["symbol"], from, to)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// --- watchlist ---

type addWatchlistRequest struct {
	AssetSymbol  string `json:"asset_symbol"`
	Notes        string `json:"notes,omitempty"`
	TargetPrice  string `json:"target_price,omitempty"`
	AlertPercent string `json:"alert_percent,omitempty"`
	ActiveAlerts bool   `json:"active_alerts,omitempty"`
}

func (s *Server) handleAddWatchlistItem(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	input := watchlist.AddInput{
		AssetSymbol:  req.AssetSymbol,
		Notes:        req.Notes,
		ActiveAlerts: req.ActiveAlerts,
	}

	if req.TargetPrice != "" {
		target, err := decimal.NewFromString(req.TargetPrice)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid target_price format")
			return
		}
		input.TargetPrice = &target
	}
	if req.AlertPercent != "" {
		percent, err := decimal.NewFromString(req.AlertPercent)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid alert_percent format")
			return
		}
		input.AlertPercent = &percent
	}

	item, err := s.WatchlistService.Add(r.Context(), input)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	items, err := s.WatchlistService.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleRemoveWatchlistItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid watchlist item id")
		return
	}

	if err := s.WatchlistService.Remove(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type setAlertsActiveRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleSetAlertsActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid watchlist item id")
		return
	}

	var req setAlertsActiveRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	if err := s.WatchlistService.SetAlertsActive(r.Context(), id, req.Active); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleEvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	events, err := s.WatchlistService.EvaluateAlerts(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// parseDateRange parses optional from/to query parameters, defaulting to the
// last 30 days
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromStr != "" {
		if from, err = time.Parse(dateLayout, fromStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toStr != "" {
		if to, err = time.Parse(dateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, nil
}
