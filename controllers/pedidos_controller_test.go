package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/productsuite/productsuite-api/config"
	"github.com/productsuite/productsuite-api/middleware"
	"github.com/productsuite/productsuite-api/models"
	"github.com/productsuite/productsuite-api/services"
	"github.com/productsuite/productsuite-api/utils"
)

func setupPedidosTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.SetConfig(&config.Config{JWTSecret: testSecret})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Pedido{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)

	router := gin.New()
	pedidos := router.Group("/api/pedidos", middleware.RequireAuth())
	{
		pedidos.GET("", GetPedidos)
		pedidos.POST("", CreatePedido)
		pedidos.PUT("/:id", UpdatePedido)
		pedidos.DELETE("/:id", DeletePedido)
		pedidos.DELETE("", middleware.RequireAdmin(), DeleteAllPedidos)
		pedidos.GET("/export", ExportPedidos)
	}
	return db, router
}

func authedRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func workerToken(t *testing.T) string {
	t.Helper()
	token, err := utils.NewToken(testSecret, 2, "tania", "worker")
	assert.NoError(t, err)
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.NewToken(testSecret, 1, "admin", "admin")
	assert.NoError(t, err)
	return token
}

func validPedidoBody() map[string]interface{} {
	return map[string]interface{}{
		"telefono":    "600111222",
		"tipo_prenda": "camiseta",
		"talla":       "M",
		"color":       "rojo",
		"codigo":      "CAM-001",
		"precio":      19.95,
		"metodo_pago": "efectivo",
		"notas":       "sin mangas",
		"fecha_envio": "2026-09-15",
	}
}

func TestCreatePedido(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := workerToken(t)

	w := authedRequest(t, router, http.MethodPost, "/api/pedidos", token, validPedidoBody())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pedido registrado correctamente")

	var pedido models.Pedido
	assert.NoError(t, db.First(&pedido).Error)
	assert.Equal(t, "600111222", pedido.Telefono)
	assert.Equal(t, "activo", pedido.Estado, "New orders default to estado activo")
	assert.False(t, pedido.CreatedAt.IsZero(), "Creation timestamp is server-assigned")
}

func TestCreatePedidoMissingFields(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := workerToken(t)

	required := []string{"telefono", "tipo_prenda", "talla", "color", "codigo", "precio", "metodo_pago"}
	for _, field := range required {
		t.Run("missing "+field, func(t *testing.T) {
			body := validPedidoBody()
			delete(body, field)

			w := authedRequest(t, router, http.MethodPost, "/api/pedidos", token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Campos obligatorios incompletos")
		})
	}

	// A rejected create must leave no row behind
	var count int64
	assert.NoError(t, db.Model(&models.Pedido{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "Failed creates must not write")
}

func TestGetPedidosNewestFirst(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := workerToken(t)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, tel := range []string{"600000001", "600000002", "600000003"} {
		pedido := models.Pedido{
			Telefono: tel, TipoPrenda: "camiseta", Talla: "M", Color: "azul",
			Codigo: "C", Precio: 10, MetodoPago: "tarjeta", Estado: "activo",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		assert.NoError(t, db.Create(&pedido).Error)
	}

	w := authedRequest(t, router, http.MethodGet, "/api/pedidos", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var pedidos []models.Pedido
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedidos))
	assert.Len(t, pedidos, 3)
	assert.Equal(t, "600000003", pedidos[0].Telefono, "Newest order comes first")
	assert.Equal(t, "600000001", pedidos[2].Telefono)
}

func TestUpdatePedido(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := workerToken(t)

	pedido := models.Pedido{
		Telefono: "600111222", TipoPrenda: "camiseta", Talla: "M", Color: "rojo",
		Codigo: "CAM-001", Precio: 19.95, MetodoPago: "efectivo", Estado: "activo",
	}
	assert.NoError(t, db.Create(&pedido).Error)

	body := validPedidoBody()
	body["color"] = "negro"
	body["estado"] = "entregado"
	body["notas"] = ""

	w := authedRequest(t, router, http.MethodPut, "/api/pedidos/1", token, body)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Pedido
	assert.NoError(t, db.First(&updated, pedido.ID).Error)
	assert.Equal(t, "negro", updated.Color)
	assert.Equal(t, "entregado", updated.Estado)
	assert.Equal(t, "", updated.Notas, "Full-row replace clears omitted text fields")
}

func TestUpdateNonexistentPedidoIsNoOp(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := workerToken(t)

	w := authedRequest(t, router, http.MethodPut, "/api/pedidos/999", token, validPedidoBody())
	assert.Equal(t, http.StatusOK, w.Code, "Updating a missing id silently succeeds")

	var count int64
	assert.NoError(t, db.Model(&models.Pedido{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeletePedido(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := workerToken(t)

	pedido := models.Pedido{
		Telefono: "600111222", TipoPrenda: "falda", Talla: "S", Color: "verde",
		Codigo: "FAL-002", Precio: 25, MetodoPago: "bizum", Estado: "activo",
	}
	assert.NoError(t, db.Create(&pedido).Error)

	w := authedRequest(t, router, http.MethodDelete, "/api/pedidos/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pedido eliminado correctamente")

	var count int64
	assert.NoError(t, db.Model(&models.Pedido{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteAllPedidos(t *testing.T) {
	db, router := setupPedidosTest(t)

	for i := 0; i < 3; i++ {
		pedido := models.Pedido{
			Telefono: "600111222", TipoPrenda: "camiseta", Talla: "M", Color: "rojo",
			Codigo: "CAM-001", Precio: 19.95, MetodoPago: "efectivo", Estado: "activo",
		}
		assert.NoError(t, db.Create(&pedido).Error)
	}

	// Workers cannot bulk delete
	w := authedRequest(t, router, http.MethodDelete, "/api/pedidos", workerToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = authedRequest(t, router, http.MethodDelete, "/api/pedidos", adminToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Todos los pedidos han sido eliminados")

	// Listing afterwards returns an empty collection
	w = authedRequest(t, router, http.MethodGet, "/api/pedidos", adminToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var pedidos []models.Pedido
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedidos))
	assert.Empty(t, pedidos)
}

func TestExportPedidos(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := adminToken(t)

	mock := services.NewMockArchiveService()
	mock.SetAsMockForTesting()
	defer services.SetArchiveService(nil)

	// Two phones, out of insertion order, to verify the export ordering
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Pedido{
		{Telefono: "600000002", TipoPrenda: "camiseta", Talla: "M", Color: "rojo",
			Codigo: "A", Precio: 10, MetodoPago: "efectivo", Estado: "activo", CreatedAt: base},
		{Telefono: "600000001", TipoPrenda: "falda", Talla: "S", Color: "azul",
			Codigo: "B", Precio: 20, MetodoPago: "tarjeta", Estado: "activo", CreatedAt: base.Add(2 * time.Hour)},
		{Telefono: "600000001", TipoPrenda: "abrigo", Talla: "L", Color: "negro",
			Codigo: "C", Precio: 30, MetodoPago: "bizum", Estado: "activo", CreatedAt: base.Add(time.Hour)},
	}
	for i := range rows {
		assert.NoError(t, db.Create(&rows[i]).Error)
	}

	w := authedRequest(t, router, http.MethodGet, "/api/pedidos/export", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ExcelContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="pedidos.xlsx"`)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err, "The download must be a readable workbook")
	defer f.Close()

	sheetRows, err := f.GetRows("Pedidos")
	assert.NoError(t, err)
	assert.Len(t, sheetRows, 4, "Header plus one row per order")

	// Ordered by phone ascending, then creation date ascending
	assert.Equal(t, "600000001", sheetRows[1][1])
	assert.Equal(t, "abrigo", sheetRows[1][2])
	assert.Equal(t, "600000001", sheetRows[2][1])
	assert.Equal(t, "falda", sheetRows[2][2])
	assert.Equal(t, "600000002", sheetRows[3][1])

	// A copy was archived
	assert.Equal(t, 1, mock.UploadCount())
}

func TestExportPedidosSurvivesArchiveFailure(t *testing.T) {
	db, router := setupPedidosTest(t)
	token := adminToken(t)

	mock := services.NewMockArchiveService()
	mock.FailUploads()
	mock.SetAsMockForTesting()
	defer services.SetArchiveService(nil)

	pedido := models.Pedido{
		Telefono: "600111222", TipoPrenda: "camiseta", Talla: "M", Color: "rojo",
		Codigo: "CAM-001", Precio: 19.95, MetodoPago: "efectivo", Estado: "activo",
	}
	assert.NoError(t, db.Create(&pedido).Error)

	w := authedRequest(t, router, http.MethodGet, "/api/pedidos/export", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, "Archive failures must not fail the download")
	assert.Equal(t, services.ExcelContentType, w.Header().Get("Content-Type"))
}

func TestPedidosRequireAuthentication(t *testing.T) {
	_, router := setupPedidosTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pedidos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
