package httpapi

import (
	"errors"
	"net/http"
	"time"

	"shodart.org/internal/product"
)

type productResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Width       *float64  `json:"width"`
	Height      *float64  `json:"height"`
	Quantity    int       `json:"quantity"`
	ImageURLs   []string  `json:"image_urls"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *product.Product) productResponse {
	urls := p.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Width:       p.Width,
		Height:      p.Height,
		Quantity:    p.Quantity,
		ImageURLs:   urls,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type createProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	Quantity    int      `json:"quantity"`
	ImageURLs   []string `json:"image_urls"`
}

type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	Quantity    *int     `json:"quantity"`
	ImageURLs   []string `json:"image_urls"`
}

func (a *API) handleProductsList(w http.ResponseWriter, r *http.Request) {
	list, err := a.products.List(r.Context())
	if err != nil {
		a.handleProductError(w, r, err)
		return
	}
	out := make([]productResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleProductGet(w http.ResponseWriter, r *http.Request) {
	p, err := a.products.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		a.handleProductError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (a *API) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := a.products.Create(r.Context(), product.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Width:       req.Width,
		Height:      req.Height,
		Quantity:    req.Quantity,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		a.handleProductError(w, r, err)
		return
	}
	w.Header().Set("Location", "/products/"+p.ID)
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

func (a *API) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := a.products.Update(r.Context(), r.PathValue("id"), product.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Width:       req.Width,
		Height:      req.Height,
		Quantity:    req.Quantity,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		a.handleProductError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (a *API) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		a.handleProductError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleProductError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "product not found")
	case errors.Is(err, product.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
