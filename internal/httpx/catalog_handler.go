package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/milsabores/storefront/internal/catalog"
)

// ProductReader is the catalog read surface; satisfied by *catalog.Store.
type ProductReader interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

// Refresher triggers a catalog sync; satisfied by *catalog.Refresher.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type CatalogHandler struct {
	Store     ProductReader
	Refresher Refresher
	Cache     *catalog.Cache // optional
	Log       *zap.Logger
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Post("/catalog/refresh", h.refresh)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Cache != nil {
		if ps, ok := h.Cache.GetList(ctx); ok {
			writeJSON(w, http.StatusOK, ps)
			return
		}
	}

	ps, err := h.Store.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}
	if h.Cache != nil {
		if err := h.Cache.SetList(ctx, ps); err != nil {
			h.Log.Warn("catalog cache prime", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, ps)
}

// POST /catalog/refresh, admin only. A failed fetch still answers 502 after
// a possible fallback seed; the catalog itself stays serveable.
func (h *CatalogHandler) refresh(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if sess.Role != "admin" {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	switch err := h.Refresher.Refresh(ctx); {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
	case errors.Is(err, catalog.ErrRefreshInFlight):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
