package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bookmyrepair-server/database"
	"bookmyrepair-server/models"
	"bookmyrepair-server/utils"
)

// RegisterTechnicianRoutes registers the technician roster endpoints
func RegisterTechnicianRoutes(rg *gin.RouterGroup) {
	rg.GET("", listTechnicians)
	rg.POST("", createTechnician)
	rg.GET("/:id", getTechnician)
	rg.PUT("/:id", updateTechnician)
	rg.DELETE("/:id", deleteTechnician)
}

func parseTechnicianID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician ID"})
		return 0, false
	}
	return uint(id), true
}

func listTechnicians(c *gin.Context) {
	var technicians []models.Technician
	if err := database.DB.Order("name ASC").Find(&technicians).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch technicians"})
		return
	}
	c.JSON(http.StatusOK, technicians)
}

func createTechnician(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	technician := models.Technician{
		Name:     utils.CleanString(req.Name),
		Phone:    utils.CleanPhone(req.Phone),
		Email:    utils.CleanEmail(req.Email),
		IsActive: true,
	}
	if technician.Name == "" || technician.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}

	if err := database.DB.Create(&technician).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create technician"})
		return
	}
	c.JSON(http.StatusCreated, technician)
}

func getTechnician(c *gin.Context) {
	id, ok := parseTechnicianID(c)
	if !ok {
		return
	}

	var technician models.Technician
	if err := database.DB.First(&technician, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load technician"})
		}
		return
	}
	c.JSON(http.StatusOK, technician)
}

func updateTechnician(c *gin.Context) {
	id, ok := parseTechnicianID(c)
	if !ok {
		return
	}

	var technician models.Technician
	if err := database.DB.First(&technician, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Email    *string `json:"email"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if req.Name != nil {
		technician.Name = utils.CleanString(*req.Name)
	}
	if req.Phone != nil {
		technician.Phone = utils.CleanPhone(*req.Phone)
	}
	if req.Email != nil {
		technician.Email = utils.CleanEmail(*req.Email)
	}
	if req.IsActive != nil {
		technician.IsActive = *req.IsActive
	}
	if technician.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	if err := database.DB.Save(&technician).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update technician"})
		return
	}
	c.JSON(http.StatusOK, technician)
}

// technicianClearUpdates resets the denormalized technician snapshot on
// a booking alongside the roster link.
func technicianClearUpdates() map[string]interface{} {
	return map[string]interface{}{
		"technician_id":    nil,
		"technician":       "",
		"technician_name":  "",
		"technician_phone": "",
	}
}

// deleteTechnician removes the roster entry and clears the technician
// fields on every booking that referenced it. No bookings are deleted.
func deleteTechnician(c *gin.Context) {
	id, ok := parseTechnicianID(c)
	if !ok {
		return
	}

	result := database.DB.Delete(&models.Technician{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete technician"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
		return
	}

	if err := database.DB.Model(&models.Booking{}).
		Where("technician_id = ?", id).
		Updates(technicianClearUpdates()).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear technician from bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
