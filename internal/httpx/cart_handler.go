package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/milsabores/storefront/internal/cart"
	"github.com/milsabores/storefront/internal/catalog"
)

type CartHandler struct {
	Carts    cart.Store
	Products ProductReader
	Log      *zap.Logger
}

type cartView struct {
	Lines []cart.Line     `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/cart", h.get)
	r.Post("/cart/items", h.add)
	r.Post("/cart/items/{productID}/increase", h.increase)
	r.Post("/cart/items/{productID}/decrease", h.decrease)
	r.Delete("/cart/items/{productID}", h.remove)
	r.Delete("/cart", h.clear)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	h.respondCart(w, r, sess.Email)
}

type addItemReq struct {
	ProductID int64 `json:"product_id"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Products.Get(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.Carts.Add(ctx, sess.Email, p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondCart(w, r, sess.Email)
}

func (h *CartHandler) increase(w http.ResponseWriter, r *http.Request) {
	h.lineOp(w, r, h.Carts.Increase)
}

func (h *CartHandler) decrease(w http.ResponseWriter, r *http.Request) {
	h.lineOp(w, r, h.Carts.Decrease)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	h.lineOp(w, r, h.Carts.Remove)
}

// lineOp runs one of the per-line cart operations. A missing line is a
// silent no-op by contract, so these never 404.
func (h *CartHandler) lineOp(w http.ResponseWriter, r *http.Request, op func(context.Context, string, int64) error) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := op(ctx, sess.Email, productID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondCart(w, r, sess.Email)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Carts.Clear(ctx, sess.Email); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondCart(w, r, sess.Email)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, email string) {
	lines, err := h.Carts.Lines(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lines == nil {
		lines = []cart.Line{}
	}
	writeJSON(w, http.StatusOK, cartView{Lines: lines, Total: cart.Total(lines)})
}
