package menucontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/saludmexfood/saluds-mx-food/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MenuWeek{}, &models.MenuItem{}))
	return db
}

func testRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/public/menu/", GetCurrentMenu(db, nil))
	r.GET("/admin/menu/weeks/", GetMenuWeeks(db))
	r.POST("/admin/menu/weeks/", CreateMenuWeek(db, nil))
	r.PATCH("/admin/menu/weeks/:id", UpdateMenuWeek(db, nil))
	r.GET("/admin/menu/weeks/:id/items", GetWeekItems(db))
	r.GET("/admin/menu/items/", GetMenuItems(db))
	r.POST("/admin/menu/items/", CreateMenuItem(db, nil))
	r.PATCH("/admin/menu/items/:id", UpdateMenuItem(db, nil))
	return r
}

func TestGetCurrentMenu_PublishedWeekWithAvailableItems(t *testing.T) {
	db := setupTestDB(t)

	old := models.MenuWeek{StartsAt: time.Now().Add(-14 * 24 * time.Hour), SellingDays: "Fri", Published: true}
	current := models.MenuWeek{StartsAt: time.Now(), SellingDays: "Fri,Sat", Published: true}
	draft := models.MenuWeek{StartsAt: time.Now().Add(7 * 24 * time.Hour), SellingDays: "Sat", Published: false}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&current).Error)
	require.NoError(t, db.Create(&draft).Error)

	require.NoError(t, db.Create(&models.MenuItem{MenuWeekID: current.ID, Name: "Tamales", PriceCents: 500, Available: true}).Error)
	require.NoError(t, db.Create(&models.MenuItem{MenuWeekID: current.ID, Name: "Flan", PriceCents: 350, Available: false}).Error)

	router := testRouter(db)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/public/menu/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var week models.MenuWeek
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &week))
	assert.Equal(t, current.ID, week.ID, "most recent published week wins")
	require.Len(t, week.Items, 1, "unavailable items are filtered out")
	assert.Equal(t, "Tamales", week.Items[0].Name)
}

func TestGetCurrentMenu_NullWhenNothingPublished(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.MenuWeek{StartsAt: time.Now(), SellingDays: "Fri"}).Error)

	router := testRouter(db)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/public/menu/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestCreateMenuWeek(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter(db)

	w := httptest.NewRecorder()
	body := `{"starts_at":"2026-09-04T00:00:00Z","selling_days":"Fri,Sat","published":true}`
	router.ServeHTTP(w, httptest.NewRequest("POST", "/admin/menu/weeks/", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	var week models.MenuWeek
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &week))
	assert.Equal(t, "Fri,Sat", week.SellingDays)
	assert.True(t, week.Published)
	assert.Equal(t, "draft", week.Status)

	// Missing selling_days is rejected before any write
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/admin/menu/weeks/", bytes.NewBufferString(`{"starts_at":"2026-09-04T00:00:00Z"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.MenuWeek{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMenuWeek_PartialPatch(t *testing.T) {
	db := setupTestDB(t)
	week := models.MenuWeek{StartsAt: time.Now(), SellingDays: "Fri", Status: "draft"}
	require.NoError(t, db.Create(&week).Error)

	router := testRouter(db)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/admin/menu/weeks/1", bytes.NewBufferString(`{"published":true}`))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuWeek
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Published)
	assert.Equal(t, "Fri", updated.SellingDays, "untouched fields survive the patch")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PATCH", "/admin/menu/weeks/99", bytes.NewBufferString(`{"published":true}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuItem_Validation(t *testing.T) {
	db := setupTestDB(t)
	week := models.MenuWeek{StartsAt: time.Now(), SellingDays: "Fri"}
	require.NoError(t, db.Create(&week).Error)

	router := testRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/admin/menu/items/",
		bytes.NewBufferString(`{"menu_week_id":1,"name":"Tacos","price_cents":-1}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price_cents must be a non-negative integer")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/admin/menu/items/",
		bytes.NewBufferString(`{"menu_week_id":99,"name":"Tacos","price_cents":100}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/admin/menu/items/",
		bytes.NewBufferString(`{"menu_week_id":1,"name":"Tacos","price_cents":850}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 850, item.PriceCents)
	assert.True(t, item.Available, "items default to available")
}

func TestUpdateMenuItem_PartialPatch(t *testing.T) {
	db := setupTestDB(t)
	week := models.MenuWeek{StartsAt: time.Now(), SellingDays: "Fri"}
	require.NoError(t, db.Create(&week).Error)
	item := models.MenuItem{MenuWeekID: week.ID, Name: "Tacos", PriceCents: 850, Available: true}
	require.NoError(t, db.Create(&item).Error)

	router := testRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PATCH", "/admin/menu/items/1",
		bytes.NewBufferString(`{"available":false}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.Available)
	assert.Equal(t, "Tacos", updated.Name)
	assert.Equal(t, 850, updated.PriceCents)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PATCH", "/admin/menu/items/1",
		bytes.NewBufferString(`{"price_cents":-5}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price_cents must be a non-negative integer")
}

func TestGetWeekItems_OrderedByID(t *testing.T) {
	db := setupTestDB(t)
	week := models.MenuWeek{StartsAt: time.Now(), SellingDays: "Fri"}
	other := models.MenuWeek{StartsAt: time.Now(), SellingDays: "Sat"}
	require.NoError(t, db.Create(&week).Error)
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.MenuItem{MenuWeekID: week.ID, Name: "A"}).Error)
	require.NoError(t, db.Create(&models.MenuItem{MenuWeekID: other.ID, Name: "B"}).Error)
	require.NoError(t, db.Create(&models.MenuItem{MenuWeekID: week.ID, Name: "C"}).Error)

	router := testRouter(db)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin/menu/weeks/1/items", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "C", items[1].Name)
}
