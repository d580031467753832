package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/auth"
	"github.com/FahriNazarudin/E-commerce/internal/catalog"
)

type CatalogStore interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
	CreateProduct(ctx context.Context, p *catalog.Product) error
	UpdateProduct(ctx context.Context, p *catalog.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]catalog.Category, error)
	GetCategory(ctx context.Context, id int64) (*catalog.Category, error)
	CreateCategory(ctx context.Context, c *catalog.Category) error
	UpdateCategory(ctx context.Context, c *catalog.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

type CatalogHandler struct {
	Store CatalogStore
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Store.ListProducts(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid product ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	p, err := h.Store.GetProduct(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	if identity, ok := auth.IdentityFrom(r.Context()); ok {
		p.UserID = identity.ID
	}
	if err := h.Store.CreateProduct(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid product ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	p.ID = id
	if err := h.Store.UpdateProduct(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Product id:%d updated", id))
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid product ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Store.DeleteProduct(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Product id:%d success to deleted", id))
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Store.ListCategories(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CatalogHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid category ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	c, err := h.Store.GetCategory(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var c catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	if err := h.Store.CreateCategory(r.Context(), &c); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid category ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	var c catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	c.ID = id
	if err := h.Store.UpdateCategory(r.Context(), &c); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Category with ID %d updated", id))
}

func (h *CatalogHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid category ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Store.DeleteCategory(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Category with ID %d deleted", id))
}

func pathID(r *http.Request, msg string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.Validation, msg)
	}
	return id, nil
}
