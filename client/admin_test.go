package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/saludmexfood/saluds-mx-food/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/auth/login", r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	require.NoError(t, c.Login("hunter2"))
	assert.Equal(t, "tok-123", c.Tokens.Get())
}

func TestSessionExpired_ClearsTokenOnForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Insufficient permissions"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("stale-token")

	_, err := c.Orders()
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, c.Tokens.Get(), "token must be cleared on 403")
}

func TestSessionExpired_ClearsTokenOnUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("stale-token")

	_, err := c.MenuWeeks()
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, c.Tokens.Get())
}

func TestCreateMenuItem_RejectsBadPriceLocally(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("tok")

	_, err := c.CreateMenuItem(MenuItemDraft{MenuWeekID: 1, Name: "Tacos"}, "-1")
	require.ErrorIs(t, err, ErrBadPrice)
	assert.EqualError(t, err, "price_cents must be a non-negative integer")

	_, err = c.CreateMenuItem(MenuItemDraft{MenuWeekID: 1, Name: "Tacos"}, "abc")
	require.ErrorIs(t, err, ErrBadPrice)

	_, err = c.CreateMenuItem(MenuItemDraft{MenuWeekID: 1, Name: ""}, "100")
	require.Error(t, err)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no request may be sent on local validation failure")
}

func TestParsePriceCents(t *testing.T) {
	n, err := ParsePriceCents(" 250 ")
	require.NoError(t, err)
	assert.Equal(t, 250, n)

	_, err = ParsePriceCents("-1")
	assert.ErrorIs(t, err, ErrBadPrice)
	_, err = ParsePriceCents("1.50")
	assert.ErrorIs(t, err, ErrBadPrice)
	_, err = ParsePriceCents("")
	assert.ErrorIs(t, err, ErrBadPrice)
}

func TestUpdateOrderStatus_FallsBackToRequestedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		// Response omits the status field.
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 5})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("tok")

	order, err := c.UpdateOrderStatus(5, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
}

func TestSystemAction_NotImplementedOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("tok")

	err := c.SystemAction("run_now")
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestAPIError_SurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "selling_days is required"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("tok")

	_, err := c.UpdateMenuWeek(1, map[string]interface{}{"selling_days": ""})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "selling_days is required", apiErr.Message)
}

func TestAPIError_NonJSONBodyDegradesToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("tok")

	_, err := c.Orders()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "request failed with status 500", apiErr.Error())
}

func TestQueues_DecodesMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"queues": map[string][]string{"email_queue": {"a.json", "b.json"}},
		})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	c.Tokens.Set("tok")

	queues, err := c.Queues()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, queues["email_queue"])
}

func TestOrdersTally_DeliveryNames(t *testing.T) {
	tally := OrdersTally{
		DeliveryList: []DeliveryEntry{
			{OrderID: 1, Name: "Maria"},
			{OrderID: 2, Name: ""},
		},
	}
	names := tally.DeliveryNames()
	assert.Equal(t, "Maria", names[1])
	_, ok := names[2]
	assert.False(t, ok, "blank names are skipped so DisplayName falls back")
}
