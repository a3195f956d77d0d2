package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisapx/farm-to-table-fav/internal/cart"
	"github.com/chrisapx/farm-to-table-fav/internal/checkout"
	"github.com/chrisapx/farm-to-table-fav/internal/notify"
)

func checkoutFixture(store *cart.Store, repo *orderRepoMock) *CheckoutHandler {
	return NewCheckoutHandler(checkout.NewService(store, repo, notify.NoopPublisher{}))
}

func TestCheckoutSubmit_Success(t *testing.T) {
	store := cart.NewStore()
	tomato := cart.Entry{ItemID: uuid.New(), Name: "Tomato", Price: 50, Unit: "kg"}
	store.AddItem(tomato)
	store.AddItem(tomato)
	store.AddItem(cart.Entry{ItemID: uuid.New(), Name: "Milk", Price: 100, Unit: "litre"})
	repo := &orderRepoMock{}
	handler := checkoutFixture(store, repo)

	body := jsonBody(t, CheckoutRequestDTO{CustomerName: "Jane", WhatsappNumber: "0712345678"})
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, httptest.NewRequest("POST", "/api/v1/checkout", body))

	require.Equal(t, http.StatusCreated, recorder.Code)
	var response CheckoutResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, 200.0, response.Total)
	assert.NotEmpty(t, response.OrderID)

	assert.Empty(t, store.Items())
	require.Len(t, repo.orders, 1)
}

func TestCheckoutSubmit_MissingContact(t *testing.T) {
	store := cart.NewStore()
	store.AddItem(cart.Entry{ItemID: uuid.New(), Name: "Tomato", Price: 50, Unit: "kg"})
	repo := &orderRepoMock{}
	handler := checkoutFixture(store, repo)

	body := jsonBody(t, CheckoutRequestDTO{CustomerName: "", WhatsappNumber: "0712345678"})
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, httptest.NewRequest("POST", "/api/v1/checkout", body))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, repo.orders)
	assert.Len(t, store.Items(), 1)
}

func TestCheckoutSubmit_EmptyCart(t *testing.T) {
	handler := checkoutFixture(cart.NewStore(), &orderRepoMock{})

	body := jsonBody(t, CheckoutRequestDTO{CustomerName: "Jane", WhatsappNumber: "0712345678"})
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, httptest.NewRequest("POST", "/api/v1/checkout", body))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckoutSubmit_BackendFailure(t *testing.T) {
	store := cart.NewStore()
	store.AddItem(cart.Entry{ItemID: uuid.New(), Name: "Tomato", Price: 50, Unit: "kg"})
	handler := checkoutFixture(store, &orderRepoMock{err: assert.AnError})

	body := jsonBody(t, CheckoutRequestDTO{CustomerName: "Jane", WhatsappNumber: "0712345678"})
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, httptest.NewRequest("POST", "/api/v1/checkout", body))

	// Generic failure, cart left for retry.
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Len(t, store.Items(), 1)
}

func TestCheckoutSubmit_InvalidBody(t *testing.T) {
	handler := checkoutFixture(cart.NewStore(), &orderRepoMock{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", bytes.NewBufferString("{oops"))
	handler.Submit(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
