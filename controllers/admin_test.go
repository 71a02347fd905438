package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func patchJSON(t *testing.T, handler http.HandlerFunc, path string, vars map[string]string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(raw))
	req = mux.SetURLVars(req, vars)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	ac := &AdminController{}
	id := primitive.NewObjectID().Hex()

	rec := patchJSON(t, ac.UpdateOrderStatus, "/api/admin/orders/not-an-id/status",
		map[string]string{"id": "not-an-id"}, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid order ID", message(t, rec))

	rec = patchJSON(t, ac.UpdateOrderStatus, "/api/admin/orders/"+id+"/status",
		map[string]string{"id": id}, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid order status", message(t, rec))
}

func TestUpdateSubscriptionValidation(t *testing.T) {
	ac := &AdminController{}
	id := primitive.NewObjectID().Hex()

	rec := patchJSON(t, ac.UpdateSubscription, "/api/admin/subscriptions/"+id,
		map[string]string{"id": id}, map[string]string{"status": "suspended"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid subscription status", message(t, rec))
}

func TestUpdateUserValidation(t *testing.T) {
	ac := &AdminController{}
	id := primitive.NewObjectID().Hex()

	rec := patchJSON(t, ac.UpdateUser, "/api/admin/users/"+id,
		map[string]string{"id": id}, map[string]string{"role": "superadmin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid role", message(t, rec))

	rec = patchJSON(t, ac.UpdateUser, "/api/admin/users/"+id,
		map[string]string{"id": id}, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Nothing to update", message(t, rec))
}
