package http

import (
	"net/http"

	"github.com/chrisapx/farm-to-table-fav/internal/catalog"
	"github.com/chrisapx/farm-to-table-fav/internal/domain"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type ItemResponseDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url,omitempty"`
	Available     bool    `json:"available"`
	StockQuantity int     `json:"stock_quantity"`
}

type ItemsResponseDTO struct {
	Items []ItemResponseDTO `json:"items"`
}

func convertItem(item *domain.GroceryItem) ItemResponseDTO {
	return ItemResponseDTO{
		ID:            item.ID.String(),
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		Unit:          item.Unit,
		Category:      item.Category,
		ImageURL:      item.ImageURL,
		Available:     item.Available,
		StockQuantity: item.StockQuantity,
	}
}

func convertItems(items []*domain.GroceryItem) []ItemResponseDTO {
	dtos := make([]ItemResponseDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, convertItem(item))
	}
	return dtos
}

// GET /api/v1/catalog?search=&category=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	items, err := h.service.Search(r.Context(), search, category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ItemsResponseDTO{Items: convertItems(items)})
}

// GET /api/v1/catalog/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}
