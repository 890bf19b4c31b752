package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/example/staybook/internal/booking"
	"github.com/example/staybook/internal/models"
	"github.com/example/staybook/internal/obs"
	"github.com/example/staybook/internal/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Quoter prices a stay against a listing.
type Quoter interface {
	Quote(ctx context.Context, req booking.QuoteRequest) (booking.Quote, error)
}

type Handler struct {
	listings    search.ServiceManagement
	quoter      Quoter
	ratelimiter search.RateLimiter
	metrics     *obs.Metrics
	logger      *slog.Logger
}

func NewHandler(listings search.ServiceManagement, q Quoter, rl search.RateLimiter, m *obs.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{listings: listings, quoter: q, ratelimiter: rl, metrics: m, logger: logger}
}

func (h *Handler) ipFromRequest(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// requestID prefers the client's X-Request-Id, then the id chi assigned.
func requestID(r *http.Request) string {
	if id := r.Header.Get(middleware.RequestIDHeader); id != "" {
		return id
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.New().String()
}

// begin tags the response with the request id and applies the rate limit.
// It returns false when the request was rejected.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	reqID := requestID(r)
	w.Header().Set(middleware.RequestIDHeader, reqID)
	meta := map[string]string{"request_id": reqID}

	if !h.ratelimiter.Allow(h.ipFromRequest(r)) {
		h.metrics.IncRateLimitDrops()
		TooManyRequests(w, "rate limit exceeded", meta)
		return meta, false
	}
	return meta, true
}

// Search handles GET /listings.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	meta, ok := h.begin(w, r)
	if !ok {
		return
	}

	req, err := models.NewSearchRequest(r.URL.Query())
	if err != nil {
		writeServiceError(w, err, meta)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err, meta)
		return
	}

	res, err := h.listings.Search(r.Context(), req.FilterSpec())
	if err != nil {
		h.logger.Error("search failed", "request_id", meta["request_id"], "error", err)
		writeServiceError(w, err, meta)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"search":   req,
		"stats":    res.Stats,
		"listings": res.Listings,
	})
}

// GetListing handles GET /listings/{id}.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	meta, ok := h.begin(w, r)
	if !ok {
		return
	}

	l, err := h.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, meta)
		return
	}
	WriteJSON(w, http.StatusOK, l)
}

// Quote handles GET /listings/{id}/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	meta, ok := h.begin(w, r)
	if !ok {
		return
	}

	req, err := models.NewQuoteRequest(chi.URLParam(r, "id"), r.URL.Query())
	if err != nil {
		writeServiceError(w, err, meta)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err, meta)
		return
	}
	br, err := req.Booking()
	if err != nil {
		writeServiceError(w, err, meta)
		return
	}

	quote, err := h.quoter.Quote(r.Context(), br)
	if err != nil {
		if StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("quote failed", "request_id", meta["request_id"], "listing_id", br.ListingID, "error", err)
		}
		writeServiceError(w, err, meta)
		return
	}
	WriteJSON(w, http.StatusOK, quote)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
