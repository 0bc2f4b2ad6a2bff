package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/dafibh/backoffice/backoffice-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentHandler() (*PaymentHandler, *testutil.MockEventPublisher) {
	paymentService := service.NewPaymentService(testutil.NewMockPaymentRepository(), testutil.NewMockClientRepository())
	publisher := &testutil.MockEventPublisher{}
	paymentService.SetEventPublisher(publisher)
	return NewPaymentHandler(paymentService), publisher
}

func validPaymentRequest() map[string]interface{} {
	return map[string]interface{}{
		"clientName":    "Acme",
		"serviceCost":   "500",
		"paidAmount":    "200",
		"paymentDate":   "2025-06-01",
		"paymentMethod": "Bank Transfer",
	}
}

func TestCreatePayment_DerivesPendingAndStatus(t *testing.T) {
	e := newTestEcho()
	h, publisher := newPaymentHandler()

	c, rec := newContext(e, http.MethodPost, "/api/v1/payments", jsonBody(t, validPaymentRequest()), testPrincipal)
	require.NoError(t, h.CreatePayment(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var response PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, json.Number("500.00"), response.ServiceCost)
	assert.Equal(t, json.Number("200.00"), response.PaidAmount)
	assert.Equal(t, json.Number("300.00"), response.PendingAmount)
	assert.Equal(t, "partial", response.Status)
	assert.Equal(t, "USD", response.Currency)

	assert.Equal(t, []string{"payment.created"}, publisher.Types())
	assert.Empty(t, publisher.Events[0].PrincipalID, "payment events go to everyone")
}

func TestCreatePayment_MissingClient(t *testing.T) {
	e := newTestEcho()
	h, _ := newPaymentHandler()
	body := validPaymentRequest()
	delete(body, "clientName")

	c, rec := newContext(e, http.MethodPost, "/api/v1/payments", jsonBody(t, body), testPrincipal)
	require.NoError(t, h.CreatePayment(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	require.NotEmpty(t, problem.Errors)
	assert.Equal(t, "clientName", problem.Errors[0].Field)
	assert.Equal(t, "Is required", problem.Errors[0].Message)
}

func TestCreatePayment_NegativePaidAmount(t *testing.T) {
	e := newTestEcho()
	h, _ := newPaymentHandler()
	body := validPaymentRequest()
	body["paidAmount"] = "-5"

	c, rec := newContext(e, http.MethodPost, "/api/v1/payments", jsonBody(t, body), testPrincipal)
	require.NoError(t, h.CreatePayment(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentLifecycle(t *testing.T) {
	e := newTestEcho()
	h, publisher := newPaymentHandler()

	c, rec := newContext(e, http.MethodPost, "/api/v1/payments", jsonBody(t, validPaymentRequest()), testPrincipal)
	require.NoError(t, h.CreatePayment(c))
	var created PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.ID.String()

	// Payments are shared, so another principal sees it
	c, rec = newContext(e, http.MethodGet, "/api/v1/payments", nil, "auth0|other")
	require.NoError(t, h.ListPayments(c))
	var list []PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	body := validPaymentRequest()
	body["paidAmount"] = "500"
	c, rec = newContext(e, http.MethodPut, "/api/v1/payments/"+id, jsonBody(t, body), testPrincipal)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UpdatePayment(c))
	var updated PaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, json.Number("0.00"), updated.PendingAmount)

	c, rec = newContext(e, http.MethodDelete, "/api/v1/payments/"+id, nil, testPrincipal)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.DeletePayment(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newContext(e, http.MethodGet, "/api/v1/payments/"+id, nil, testPrincipal)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.GetPayment(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []string{"payment.created", "payment.updated", "payment.deleted"}, publisher.Types())
}
