package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/productsuite/productsuite-api/config"
	"github.com/productsuite/productsuite-api/models"
	"github.com/productsuite/productsuite-api/services"
)

// PedidoRequest represents the request body for creating or updating an order
type PedidoRequest struct {
	Telefono   string  `json:"telefono"`
	TipoPrenda string  `json:"tipo_prenda"`
	Talla      string  `json:"talla"`
	Color      string  `json:"color"`
	Codigo     string  `json:"codigo"`
	Precio     float64 `json:"precio"`
	MetodoPago string  `json:"metodo_pago"`
	Notas      string  `json:"notas"`
	FechaEnvio string  `json:"fecha_envio"`
	Estado     string  `json:"estado"`
}

func (r *PedidoRequest) missingRequired() bool {
	return r.Telefono == "" || r.TipoPrenda == "" || r.Talla == "" ||
		r.Color == "" || r.Codigo == "" || r.Precio == 0 || r.MetodoPago == ""
}

// GetPedidos handles GET /api/pedidos - lists all orders, newest first
func GetPedidos(c *gin.Context) {
	db := config.GetDB()
	var pedidos []models.Pedido
	if err := db.Order("fecha DESC").Find(&pedidos).Error; err != nil {
		log.Printf("pedidos: list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener pedidos"})
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

// CreatePedido handles POST /api/pedidos - registers a new order
func CreatePedido(c *gin.Context) {
	var req PedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}

	if req.missingRequired() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos obligatorios incompletos"})
		return
	}

	pedido := models.Pedido{
		Telefono:   req.Telefono,
		TipoPrenda: req.TipoPrenda,
		Talla:      req.Talla,
		Color:      req.Color,
		Codigo:     req.Codigo,
		Precio:     req.Precio,
		MetodoPago: req.MetodoPago,
		Estado:     "activo",
		Notas:      req.Notas,
		FechaEnvio: req.FechaEnvio,
	}

	db := config.GetDB()
	if err := db.Create(&pedido).Error; err != nil {
		log.Printf("pedidos: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno al registrar pedido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pedido registrado correctamente"})
}

// UpdatePedido handles PUT /api/pedidos/:id - full-row replace of every
// mutable field including estado. Updating a nonexistent id is a silent
// no-op, matching the API contract.
func UpdatePedido(c *gin.Context) {
	var req PedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}

	db := config.GetDB()
	err := db.Model(&models.Pedido{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
		"telefono":    req.Telefono,
		"tipo_prenda": req.TipoPrenda,
		"talla":       req.Talla,
		"color":       req.Color,
		"codigo":      req.Codigo,
		"precio":      req.Precio,
		"metodo_pago": req.MetodoPago,
		"notas":       req.Notas,
		"fecha_envio": req.FechaEnvio,
		"estado":      req.Estado,
	}).Error
	if err != nil {
		log.Printf("pedidos: update %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar pedido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pedido actualizado correctamente"})
}

// DeletePedido handles DELETE /api/pedidos/:id
func DeletePedido(c *gin.Context) {
	db := config.GetDB()
	if err := db.Where("id = ?", c.Param("id")).Delete(&models.Pedido{}).Error; err != nil {
		log.Printf("pedidos: delete %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar pedido"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pedido eliminado correctamente"})
}

// DeleteAllPedidos handles DELETE /api/pedidos - bulk removal, admin only
func DeleteAllPedidos(c *gin.Context) {
	db := config.GetDB()
	if err := db.Where("1 = 1").Delete(&models.Pedido{}).Error; err != nil {
		log.Printf("pedidos: delete all failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar todos los pedidos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todos los pedidos han sido eliminados"})
}

// ExportPedidos handles GET /api/pedidos/export - serves all orders as an
// xlsx download, ordered by phone then ship date. When the export archive
// is configured a copy is kept there; archive failures never fail the
// download itself.
func ExportPedidos(c *gin.Context) {
	db := config.GetDB()
	var pedidos []models.Pedido
	if err := db.Order("telefono ASC, fecha ASC").Find(&pedidos).Error; err != nil {
		log.Printf("pedidos: export query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al exportar pedidos a Excel"})
		return
	}

	buf, err := services.BuildPedidosExcel(pedidos)
	if err != nil {
		log.Printf("pedidos: export workbook build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al exportar pedidos a Excel"})
		return
	}

	if archive := services.GetArchiveService(); archive != nil {
		key := fmt.Sprintf("exports/pedidos-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
		if location, err := archive.UploadExport(key, buf.Bytes()); err != nil {
			log.Printf("pedidos: export archive upload failed: %v", err)
		} else {
			log.Printf("pedidos: export archived at %s", location)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="pedidos.xlsx"`)
	c.Data(http.StatusOK, services.ExcelContentType, buf.Bytes())
}
