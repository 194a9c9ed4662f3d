package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newRig wires the handlers behind a stub that plants the given principal,
// standing in for the auth middleware and role gate.
func newRig(t *testing.T, principal model.Principal) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}))

	d := &internal.Deps{DB: db}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("requestID", "test")
		c.Set(middleware.AuthUserKey, principal)
	})
	router.POST("/product/createProduct", func(c *gin.Context) { Create(c, d) })
	router.PUT("/product/updateProduct/:productId", func(c *gin.Context) { Update(c, d) })
	router.DELETE("/product/deleteProduct/:productId", func(c *gin.Context) { Delete(c, d) })
	router.GET("/product/getProductById/:productId", func(c *gin.Context) { Fetch(c, d) })
	router.GET("/product/getAllProduct", func(c *gin.Context) { FetchAll(c, d) })

	return router, d
}

func jsonReq(method, path string, body gin.H) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreate_OwnedByCaller(t *testing.T) {
	router, d := newRig(t, model.Principal{ID: 7, Email: "ada@gmail.com", Role: model.RoleAdmin})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPost, "/product/createProduct", gin.H{
		"name":            "cola",
		"category":        "drinks",
		"image":           "https://cdn.test/cola.png",
		"country":         "US",
		"boycott":         true,
		"reasonOfBoycott": "funding",
		"rate":            8,
	}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var row model.Product
	require.NoError(t, d.DB.First(&row).Error)
	assert.Equal(t, uint(7), row.AdminID)
	assert.Equal(t, "cola", row.Name)
	assert.True(t, row.Boycott)
	assert.Equal(t, 8, row.Rate)
}

func TestCreate_MissingFields(t *testing.T) {
	router, _ := newRig(t, model.Principal{ID: 7, Role: model.RoleAdmin})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPost, "/product/createProduct", gin.H{
		"name": "cola",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Another admin's rows are answered like missing ones, never touched.
func TestUpdateDelete_ForeignRowsInvisible(t *testing.T) {
	router, d := newRig(t, model.Principal{ID: 7, Role: model.RoleAdmin})

	other := model.Product{Name: "cola", Category: "drinks", Image: "x", Country: "US", AdminID: 99}
	require.NoError(t, d.DB.Create(&other).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPut, fmt.Sprintf("/product/updateProduct/%d", other.ID), gin.H{
		"name": "renamed",
	}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/product/deleteProduct/%d", other.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var row model.Product
	require.NoError(t, d.DB.First(&row, other.ID).Error)
	assert.Equal(t, "cola", row.Name)
}

func TestUpdate_PartialFields(t *testing.T) {
	router, d := newRig(t, model.Principal{ID: 7, Role: model.RoleAdmin})

	p := model.Product{Name: "cola", Category: "drinks", Image: "x", Country: "US", Boycott: true, Rate: 8, AdminID: 7}
	require.NoError(t, d.DB.Create(&p).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPut, fmt.Sprintf("/product/updateProduct/%d", p.ID), gin.H{
		"boycott": false,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var row model.Product
	require.NoError(t, d.DB.First(&row, p.ID).Error)
	assert.False(t, row.Boycott)
	assert.Equal(t, "cola", row.Name)
	assert.Equal(t, 8, row.Rate)
}

func TestFetch_PublicRead(t *testing.T) {
	router, d := newRig(t, model.Principal{ID: 7, Role: model.RoleAdmin})

	p := model.Product{Name: "cola", Category: "drinks", Image: "x", Country: "US", AdminID: 7}
	require.NoError(t, d.DB.Create(&p).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/product/getProductById/%d", p.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cola")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/getProductById/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/getAllProduct", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cola")
}
