package http

import (
	"encoding/json"
	"net/http"

	"github.com/chrisapx/farm-to-table-fav/internal/checkout"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type CheckoutRequestDTO struct {
	CustomerName   string `json:"customer_name"`
	WhatsappNumber string `json:"whatsapp_number"`
	Notes          string `json:"notes"`
}

type CheckoutResponseDTO struct {
	OrderID string  `json:"order_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.Submit(r.Context(), checkout.Request{
		CustomerName:   req.CustomerName,
		WhatsappNumber: req.WhatsappNumber,
		Notes:          req.Notes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: order.ID.String(),
		Status:  order.Status.String(),
		Total:   order.Total(),
	})
}
