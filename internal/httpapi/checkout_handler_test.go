package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/cart"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/checkout"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderWriterMock struct {
	m   sync.Mutex
	err error
	ids []string
}

func (m *orderWriterMock) WriteOrder(_ context.Context, order *domain.Order) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	order.ID = "order-9"
	m.ids = append(m.ids, order.ID)
	return order.ID, nil
}

type orderLinkerMock struct{}

func (orderLinkerMock) AppendUserOrder(context.Context, string, string) error { return nil }

func newCheckoutHandler(store *cartStoreMock, products *productFetcherMock, orders *orderWriterMock) *CheckoutHandler {
	cartSvc := cart.NewService(store, products, 99)
	sessions := checkout.NewSessionStore()
	committer := checkout.NewCommitter(orders, cartSvc, orderLinkerMock{})
	machine := checkout.NewMachine(sessions, cartSvc, products, committer, 0.08, 5.99)
	return NewCheckoutHandler(machine, 5*time.Second)
}

func stockedCart() (*cartStoreMock, *productFetcherMock) {
	store := &cartStoreMock{items: []domain.CartItem{
		{ProductID: "p1", Name: "Coffee Grinder", Price: 34.90, Quantity: 2},
	}}
	products := &productFetcherMock{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Coffee Grinder", Price: 34.90, Stock: 5, Active: true},
	}}
	return store, products
}

const validShippingJSON = `{
	"first_name": "Ada", "last_name": "Lovelace",
	"email": "ada@example.com", "phone": "5551234567",
	"street": "1 Analytical Way", "city": "London",
	"state": "LDN", "zip_code": "12345", "country": "United Kingdom"
}`

const validPaymentJSON = `{
	"method": "card", "card_number": "4111111111111111",
	"expiry_date": "12/27", "cvv": "123",
	"cardholder_name": "Ada Lovelace", "agree_terms": true
}`

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", path, strings.NewReader(body)))
	handler(recorder, request)
	return recorder
}

func TestBegin_EmptyCartConflict(t *testing.T) {
	handler := newCheckoutHandler(&cartStoreMock{}, &productFetcherMock{}, &orderWriterMock{})

	recorder := postJSON(t, handler.Begin, "/api/v1/checkout", "")

	require.Equal(t, http.StatusConflict, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestBegin_StartsAtShipping(t *testing.T) {
	store, products := stockedCart()
	handler := newCheckoutHandler(store, products, &orderWriterMock{})

	recorder := postJSON(t, handler.Begin, "/api/v1/checkout", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var session CheckoutSessionDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&session))
	assert.Equal(t, "shipping", session.Step)
	assert.False(t, session.HasShipping)
}

func TestSubmitShipping_FieldErrors(t *testing.T) {
	store, products := stockedCart()
	handler := newCheckoutHandler(store, products, &orderWriterMock{})

	recorder := postJSON(t, handler.SubmitShipping, "/api/v1/checkout/shipping", `{"first_name":"Ada","email":"nope"}`)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "validation_failed", resp.Code)
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "last_name")
}

func TestCheckout_FullFlow(t *testing.T) {
	store, products := stockedCart()
	orders := &orderWriterMock{}
	handler := newCheckoutHandler(store, products, orders)

	recorder := postJSON(t, handler.SubmitShipping, "/api/v1/checkout/shipping", validShippingJSON)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = postJSON(t, handler.SubmitPayment, "/api/v1/checkout/payment", validPaymentJSON)
	require.Equal(t, http.StatusOK, recorder.Code)

	var session CheckoutSessionDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&session))
	assert.Equal(t, "review", session.Step)

	recorder = postJSON(t, handler.Confirm, "/api/v1/checkout/confirm", "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var confirm ConfirmResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&confirm))
	assert.Equal(t, "order-9", confirm.OrderID)

	// Cart cleared after the order was recorded.
	assert.Empty(t, store.items)
}

func TestConfirm_PersistFailureKeepsCart(t *testing.T) {
	store, products := stockedCart()
	orders := &orderWriterMock{err: errors.New("insert failed")}
	handler := newCheckoutHandler(store, products, orders)

	require.Equal(t, http.StatusOK, postJSON(t, handler.SubmitShipping, "/api/v1/checkout/shipping", validShippingJSON).Code)
	require.Equal(t, http.StatusOK, postJSON(t, handler.SubmitPayment, "/api/v1/checkout/payment", validPaymentJSON).Code)

	recorder := postJSON(t, handler.Confirm, "/api/v1/checkout/confirm", "")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.NotEmpty(t, store.items, "cart must survive a failed order persist")
}

func TestConfirm_OutOfStockConflict(t *testing.T) {
	store, products := stockedCart()
	products.products["p1"].Stock = 1 // cart wants 2
	handler := newCheckoutHandler(store, products, &orderWriterMock{})

	require.Equal(t, http.StatusOK, postJSON(t, handler.SubmitShipping, "/api/v1/checkout/shipping", validShippingJSON).Code)
	require.Equal(t, http.StatusOK, postJSON(t, handler.SubmitPayment, "/api/v1/checkout/payment", validPaymentJSON).Code)

	recorder := postJSON(t, handler.Confirm, "/api/v1/checkout/confirm", "")

	require.Equal(t, http.StatusConflict, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "commit_rejected", resp.Code)
	assert.Contains(t, resp.Error, "Coffee Grinder")
}
