package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productsuite/productsuite-api/config"
	"github.com/productsuite/productsuite-api/middleware"
	"github.com/productsuite/productsuite-api/models"
)

// Sentinel names used when an incidencia reference cannot be resolved.
const (
	unassignedName = "Sin asignar"
	unknownName    = "Desconocido"
)

// CreateIncidenciaRequest represents the request body for creating an incidencia
type CreateIncidenciaRequest struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	AssignedTo  *uint  `json:"assigned_to"`
}

// IncidenciaResponse is an incidencia with its user references resolved to
// display names
type IncidenciaResponse struct {
	models.Incidencia
	AssignedToName string `json:"assigned_to_name"`
	CreatedByName  string `json:"created_by_name"`
}

// GetIncidencias handles GET /api/incidencias - lists incidencias, newest
// first. Admins and accounts holding the supervisor permission see every
// row; everyone else only the rows assigned to them. User references are
// resolved to display names, with sentinels for null or dangling ids.
func GetIncidencias(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
		return
	}

	db := config.GetDB()

	seesAll := claims.Role == "admin"
	if !seesAll {
		var caller models.User
		if err := db.First(&caller, claims.UserID).Error; err == nil {
			seesAll = caller.SupervisorIncidencias
		}
	}

	query := db.Preload("Assignee").Preload("Creator").Order("fecha_creacion DESC")
	if !seesAll {
		query = query.Where("assigned_to = ?", claims.UserID)
	}

	var incidencias []models.Incidencia
	if err := query.Find(&incidencias).Error; err != nil {
		log.Printf("incidencias: list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener incidencias"})
		return
	}

	response := make([]IncidenciaResponse, 0, len(incidencias))
	for _, inc := range incidencias {
		row := IncidenciaResponse{
			Incidencia:     inc,
			AssignedToName: unassignedName,
			CreatedByName:  unknownName,
		}
		if inc.Assignee != nil {
			row.AssignedToName = inc.Assignee.Fullname
		}
		if inc.Creator != nil {
			row.CreatedByName = inc.Creator.Fullname
		}
		response = append(response, row)
	}

	c.JSON(http.StatusOK, response)
}

// CreateIncidencia handles POST /api/incidencias - registers a new
// incidencia created by the caller
func CreateIncidencia(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
		return
	}

	var req CreateIncidenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}

	if req.Titulo == "" || req.Descripcion == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Título y descripción son obligatorios"})
		return
	}

	createdBy := claims.UserID
	incidencia := models.Incidencia{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Estado:      "pendiente",
		AssignedTo:  req.AssignedTo,
		CreatedBy:   &createdBy,
	}

	db := config.GetDB()
	if err := db.Create(&incidencia).Error; err != nil {
		log.Printf("incidencias: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear incidencia"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Incidencia creada correctamente"})
}

// UpdateIncidenciaEstado handles PATCH /api/incidencias/:id/estado -
// changes the status and refreshes the update timestamp
func UpdateIncidenciaEstado(c *gin.Context) {
	var req struct {
		Estado string `json:"estado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Estado == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El estado es obligatorio"})
		return
	}

	db := config.GetDB()
	err := db.Model(&models.Incidencia{}).Where("id = ?", c.Param("id")).
		Update("estado", req.Estado).Error
	if err != nil {
		log.Printf("incidencias: estado update %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar estado de incidencia"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Estado de incidencia actualizado"})
}

// UpdateIncidenciaContestacion handles PATCH /api/incidencias/:id/contestacion -
// stores the reply text and refreshes the update timestamp. The reply may
// be empty; there is no content constraint.
func UpdateIncidenciaContestacion(c *gin.Context) {
	var req struct {
		Contestacion string `json:"contestacion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}

	db := config.GetDB()
	err := db.Model(&models.Incidencia{}).Where("id = ?", c.Param("id")).
		Update("contestacion", req.Contestacion).Error
	if err != nil {
		log.Printf("incidencias: contestacion update %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar contestación"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contestación guardada"})
}

// DeleteIncidencia handles DELETE /api/incidencias/:id
func DeleteIncidencia(c *gin.Context) {
	db := config.GetDB()
	if err := db.Where("id = ?", c.Param("id")).Delete(&models.Incidencia{}).Error; err != nil {
		log.Printf("incidencias: delete %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar incidencia"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Incidencia eliminada correctamente"})
}

// EstadoCount is one row of the statistics report
type EstadoCount struct {
	Estado string `json:"estado"`
	Total  int64  `json:"total"`
}

// GetEstadisticas handles GET /api/incidencias/estadisticas - counts
// incidencias grouped by status. Only statuses currently present appear.
func GetEstadisticas(c *gin.Context) {
	db := config.GetDB()
	var stats []EstadoCount
	err := db.Model(&models.Incidencia{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Order("estado ASC").
		Scan(&stats).Error
	if err != nil {
		log.Printf("incidencias: estadisticas failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener estadísticas"})
		return
	}

	if stats == nil {
		stats = []EstadoCount{}
	}
	c.JSON(http.StatusOK, stats)
}
