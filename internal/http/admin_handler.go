package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chrisapx/farm-to-table-fav/internal/auth"
	"github.com/chrisapx/farm-to-table-fav/internal/catalog"
	"github.com/chrisapx/farm-to-table-fav/internal/domain"
	"github.com/chrisapx/farm-to-table-fav/internal/repository"
)

type AdminHandler struct {
	manager *auth.Manager
	items   repository.ItemRepository
	orders  repository.OrderRepository
	catalog *catalog.Service
}

func NewAdminHandler(manager *auth.Manager, items repository.ItemRepository, orders repository.OrderRepository, catalogService *catalog.Service) *AdminHandler {
	return &AdminHandler{
		manager: manager,
		items:   items,
		orders:  orders,
		catalog: catalogService,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}

// POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.manager.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{Token: token})
}

// POST /api/v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.SignOut(r.Context(), bearerToken(r)); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// GET /api/v1/admin/session
//
// Lets the client resolve its session tri-state: it renders nothing until
// this returns, then a login form or the panel depending on the answer.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	ok, err := h.manager.Validate(r.Context(), bearerToken(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": ok})
}

type ItemRequestDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
}

func (req *ItemRequestDTO) validate() (code, message string) {
	if req.Name == "" {
		return "invalid_name", "name is required"
	}
	if req.Price < 0 {
		return "invalid_price", "price must be non-negative"
	}
	if req.StockQuantity < 0 {
		return "invalid_stock_quantity", "stock_quantity must be non-negative"
	}
	return "", ""
}

// GET /api/v1/admin/items
func (h *AdminHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &ItemsResponseDTO{Items: convertItems(items)})
}

// POST /api/v1/admin/items
func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, message := req.validate(); code != "" {
		respondError(w, http.StatusBadRequest, code, message)
		return
	}

	item := &domain.GroceryItem{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Unit:          req.Unit,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Available:     true,
		StockQuantity: req.StockQuantity,
	}

	if err := h.items.CreateItem(r.Context(), item); err != nil {
		handleServiceError(w, err)
		return
	}
	h.catalog.Invalidate(r.Context())

	respondJSON(w, http.StatusCreated, convertItem(item))
}

// PUT /api/v1/admin/items/{item_id}
func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a valid UUID")
		return
	}

	var req ItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, message := req.validate(); code != "" {
		respondError(w, http.StatusBadRequest, code, message)
		return
	}

	item := &domain.GroceryItem{
		ID:            itemID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Unit:          req.Unit,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
	}

	if err := h.items.UpdateItem(r.Context(), item); err != nil {
		handleServiceError(w, err)
		return
	}
	h.catalog.Invalidate(r.Context())

	respondJSON(w, http.StatusOK, convertItem(item))
}

// DELETE /api/v1/admin/items/{item_id}
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a valid UUID")
		return
	}

	if err := h.items.DeleteItem(r.Context(), itemID); err != nil {
		handleServiceError(w, err)
		return
	}
	h.catalog.Invalidate(r.Context())

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type AvailabilityRequestDTO struct {
	Available bool `json:"available"`
}

// PATCH /api/v1/admin/items/{item_id}/availability
func (h *AdminHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a valid UUID")
		return
	}

	var req AvailabilityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.items.SetAvailability(r.Context(), itemID, req.Available); err != nil {
		handleServiceError(w, err)
		return
	}
	h.catalog.Invalidate(r.Context())

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type OrderItemDTO struct {
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit"`
}

type OrderResponseDTO struct {
	ID             string         `json:"id"`
	CustomerName   string         `json:"customer_name"`
	WhatsappNumber string         `json:"whatsapp_number"`
	Notes          string         `json:"notes,omitempty"`
	Status         string         `json:"status"`
	Total          float64        `json:"total"`
	Items          []OrderItemDTO `json:"items"`
	CreatedAt      string         `json:"created_at"`
}

func convertOrder(order *domain.Order) OrderResponseDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Unit:      item.Unit,
		})
	}

	return OrderResponseDTO{
		ID:             order.ID.String(),
		CustomerName:   order.CustomerName,
		WhatsappNumber: order.WhatsappNumber,
		Notes:          order.Notes,
		Status:         order.Status.String(),
		Total:          order.Total(),
		Items:          items,
		CreatedAt:      order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, convertOrder(order))
	}

	respondJSON(w, http.StatusOK, dtos)
}

type StatusRequestDTO struct {
	Status string `json:"status"`
}

// PATCH /api/v1/admin/orders/{order_id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a valid UUID")
		return
	}

	var req StatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	next := domain.OrderStatus(req.Status)
	if !next.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be pending, confirmed or delivered")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !order.Status.CanTransitionTo(next) {
		handleServiceError(w, domain.ErrIllegalTransition)
		return
	}

	if err := h.orders.UpdateOrderStatus(r.Context(), orderID, next); err != nil {
		handleServiceError(w, err)
		return
	}

	order.Status = next
	respondJSON(w, http.StatusOK, convertOrder(order))
}
