package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/milsabores/storefront/internal/orders"
	"github.com/milsabores/storefront/internal/redisx"
)

type OrdersHandler struct {
	Service *orders.Service
	Store   orders.Store
	Redis   *redis.Client // optional, status cache
	Log     *zap.Logger
}

type placeOrderReq struct {
	ShippingAddress string `json:"shipping_address"`
	BuyerName       string `json:"buyer_name"`
	BuyerEmail      string `json:"buyer_email"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.place)
	r.Get("/orders", h.list)
	r.Get("/orders/{id}", h.get)
	r.Get("/orders/{id}/status", h.status)
}

func (h *OrdersHandler) place(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Service.Place(ctx, sess.Email, req.ShippingAddress, req.BuyerName, req.BuyerEmail)
	if errors.Is(err, orders.ErrBlankAddress) {
		writeFieldErrors(w, map[string]string{"shipping_address": "shipping address is required"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.ListByUser(ctx, sess.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if out == nil {
		out = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, orders.ErrNotFound) || (err == nil && o.UserEmail != sess.Email) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// status serves the cached status first and falls back to the store,
// re-priming the cache on the way out.
func (h *OrdersHandler) status(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			if st, ok := cachedStatusOwnedBy([]byte(s), sess.Email); ok {
				writeJSON(w, http.StatusOK, map[string]any{"status": st})
				return
			}
			// not this session's order, or an entry without an owner:
			// the store decides, same as a cache miss
		}
	}

	o, err := h.Store.Get(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) || (err == nil && o.UserEmail != sess.Email) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h.Redis != nil {
		b, _ := json.Marshal(orders.CachedStatus{UserEmail: o.UserEmail, Status: o.Status})
		if err := h.Redis.Set(ctx, key, b, redisx.TTLOrderStatus).Err(); err != nil {
			h.Log.Warn("status cache prime", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": o.Status})
}

// cachedStatusOwnedBy decodes a cached order status and reports whether it
// belongs to email. Entries without an owner never match; they are treated
// as a miss so the store path re-primes them.
func cachedStatusOwnedBy(raw []byte, email string) (orders.Status, bool) {
	var c orders.CachedStatus
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", false
	}
	if c.UserEmail == "" || c.UserEmail != email {
		return "", false
	}
	return c.Status, true
}
