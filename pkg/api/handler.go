package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/kit"
	"github.com/rhlunch/rhlunch/pkg/menu"
)

// NewRouter returns an http.Handler with all menu API routes.
func NewRouter(agg *menu.Aggregator, cls *classify.Classifier, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	h := &handler{
		daily:       kit.Logging(logger, "daily_menu")(dailyMenuEndpoint(agg)),
		weekly:      kit.Logging(logger, "weekly_menu")(weeklyMenuEndpoint(agg)),
		restaurants: kit.Logging(logger, "list_restaurants")(listRestaurantsEndpoint(agg)),
		classify:    kit.Logging(logger, "classify_dish")(classifyDishEndpoint(cls)),
		agg:         agg,
	}

	mux.HandleFunc("GET /v1/menu/today", h.handleDaily)
	mux.HandleFunc("GET /v1/menu/week", h.handleWeekly)
	mux.HandleFunc("GET /v1/restaurants", h.handleRestaurants)
	mux.HandleFunc("GET /v1/classify/{dish}", h.handleClassify)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	daily       kit.Endpoint
	weekly      kit.Endpoint
	restaurants kit.Endpoint
	classify    kit.Endpoint
	agg         *menu.Aggregator
}

func (h *handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	h.handleMenu(w, r, h.daily)
}

func (h *handler) handleWeekly(w http.ResponseWriter, r *http.Request) {
	h.handleMenu(w, r, h.weekly)
}

func (h *handler) handleMenu(w http.ResponseWriter, r *http.Request, endpoint kit.Endpoint) {
	q := r.URL.Query()

	date, err := parseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := parseFilter(q.Get("restaurant"), q.Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := endpoint(r.Context(), &menuReq{Date: date, Filter: filter})
	if err != nil {
		if errors.Is(err, menu.ErrUnknownRestaurant) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	resp, err := h.restaurants(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	dish := r.PathValue("dish")
	if dish == "" {
		writeError(w, http.StatusBadRequest, "missing dish name")
		return
	}
	resp, err := h.classify(r.Context(), &classifyReq{Dish: dish})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status      string `json:"status"`
	Restaurants int    `json:"restaurants"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Restaurants: len(h.agg.Restaurants()),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
