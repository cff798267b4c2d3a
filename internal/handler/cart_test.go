package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/cart"
)

func unlockedStore(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore(nil)
	s.UnlockAccess("6266271703")
	return s
}

func addItemBody() string {
	return `{"product_id":1,"name":"Gummies","price":5,"size":"Large","flavor":"Lime","quantity":2}`
}

func TestCartHandler_AddItemRequiresUnlock(t *testing.T) {
	store := cart.NewStore(nil)
	h := NewCartHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addItemBody()))
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, store.ItemCount())
	assert.True(t, store.User().IsAccessModalOpen, "refusal should surface the gate modal")
}

func TestCartHandler_AddItem(t *testing.T) {
	store := unlockedStore(t)
	h := NewCartHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addItemBody()))
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, store.ItemCount())
	assert.InDelta(t, 10.0, store.Subtotal(), 0.001)
}

func TestCartHandler_AddItemRejectsBadBody(t *testing.T) {
	h := NewCartHandler(unlockedStore(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_UpdateAndRemove(t *testing.T) {
	store := unlockedStore(t)
	h := NewCartHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addItemBody()))
	h.AddItem(httptest.NewRecorder(), req)
	require.Equal(t, 2, store.ItemCount())

	line := `{"product_id":1,"size":"Large","flavor":"Lime","quantity":5}`
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items", strings.NewReader(line))
	rec := httptest.NewRecorder()
	h.UpdateItem(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, store.ItemCount())

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items", strings.NewReader(line))
	rec = httptest.NewRecorder()
	h.RemoveItem(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, store.ItemCount())
}

func TestCartHandler_Get(t *testing.T) {
	store := unlockedStore(t)
	h := NewCartHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}
