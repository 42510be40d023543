package ordercontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrdersTallyHandler(t *testing.T) {
	db := setupTestDB(t)
	tamales, pozole := seedMenu(t, db)

	addr := "12 Elm St"
	comment := "no onions"
	_, err := CreateOrder(db, CreateOrderRequest{
		Name: "Maria", Phone: "555-0100", PickupOrDelivery: "delivery",
		DeliveryAddress: &addr, Comment: &comment,
		Items: []OrderItemInput{{MenuItemID: tamales.ID, Qty: 2}},
	}, 500)
	require.NoError(t, err)

	_, err = CreateOrder(db, CreateOrderRequest{
		Phone: "555-0200", PickupOrDelivery: "pickup",
		Items: []OrderItemInput{
			{MenuItemID: tamales.ID, Qty: 1},
			{MenuItemID: pozole.ID, Qty: 3},
		},
	}, 500)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders/tally", GetOrdersTallyHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders/tally", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var tally OrdersTally
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tally))

	assert.Equal(t, int64(2), tally.TotalOrders)
	assert.Equal(t, int64(1), tally.TotalPickupOrders)
	assert.Equal(t, int64(1), tally.TotalDeliveryOrders)

	counts := map[uint]int{}
	for _, c := range tally.ItemCounts {
		counts[c.MenuItemID] = c.TotalQty
	}
	assert.Equal(t, 3, counts[tamales.ID])
	assert.Equal(t, 3, counts[pozole.ID])

	require.Len(t, tally.SpecialRequests, 1)
	assert.Equal(t, "no onions", *tally.SpecialRequests[0].Comment)

	require.Len(t, tally.DeliveryList, 1)
	assert.Equal(t, "Maria", tally.DeliveryList[0].Name)
	assert.Equal(t, "12 Elm St", *tally.DeliveryList[0].Address)
}

func TestGetOrdersTallyHandler_QueryFailureReturns500(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Exec("DROP TABLE orders").Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders/tally", GetOrdersTallyHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders/tally", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to tally orders")
}

func TestGetOrdersTallyHandler_EmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders/tally", GetOrdersTallyHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders/tally", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var tally OrdersTally
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tally))
	assert.Zero(t, tally.TotalOrders)
	assert.NotNil(t, tally.ItemCounts)
	assert.Empty(t, tally.ItemCounts)
	assert.Empty(t, tally.DeliveryList)
}
