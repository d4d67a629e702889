package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bookmyrepair-server/database"
	"bookmyrepair-server/models"
	"bookmyrepair-server/utils"
)

// RegisterCatalogRoutes registers the brand and device-model catalog
// endpoints. Reads are public; writes sit behind the admin guard in main.
func RegisterCatalogRoutes(public, admin *gin.RouterGroup) {
	public.GET("/brands", listBrands)
	public.GET("/brands/:id/models", listModelsForBrand)
	public.GET("/models", listDeviceModels)

	admin.POST("/brands", createBrand)
	admin.PUT("/brands/:id", updateBrand)
	admin.DELETE("/brands/:id", deleteBrand)
	admin.POST("/brands/:id/logo", uploadBrandLogo)
	admin.POST("/models", createDeviceModel)
	admin.PUT("/models/:id", updateDeviceModel)
	admin.DELETE("/models/:id", deleteDeviceModel)
	admin.POST("/models/:id/image", uploadModelImage)
}

func parseCatalogID(c *gin.Context, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return uint(id), true
}

func listBrands(c *gin.Context) {
	var brands []models.Brand
	if err := database.DB.Order("name ASC").Find(&brands).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

func listModelsForBrand(c *gin.Context) {
	id, ok := parseCatalogID(c, "brand")
	if !ok {
		return
	}

	var deviceModels []models.DeviceModel
	if err := database.DB.Where("brand_id = ?", id).Order("name ASC").Find(&deviceModels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch models"})
		return
	}
	c.JSON(http.StatusOK, deviceModels)
}

func listDeviceModels(c *gin.Context) {
	var deviceModels []models.DeviceModel
	query := database.DB.Preload("Brand").Order("name ASC")
	if brand := utils.CleanString(c.Query("brand")); brand != "" {
		query = query.Joins("JOIN brands ON brands.id = device_models.brand_id").
			Where("LOWER(brands.name) = LOWER(?)", brand)
	}
	if err := query.Find(&deviceModels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch models"})
		return
	}
	c.JSON(http.StatusOK, deviceModels)
}

func createBrand(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Logo string `json:"logo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	brand := models.Brand{Name: utils.CleanString(req.Name), Logo: utils.CleanString(req.Logo)}
	if brand.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := database.DB.Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Brand already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func updateBrand(c *gin.Context) {
	id, ok := parseCatalogID(c, "brand")
	if !ok {
		return
	}

	var brand models.Brand
	if err := database.DB.First(&brand, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	var req struct {
		Name *string `json:"name"`
		Logo *string `json:"logo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if req.Name != nil {
		if name := utils.CleanString(*req.Name); name != "" {
			brand.Name = name
		}
	}
	if req.Logo != nil {
		brand.Logo = utils.CleanString(*req.Logo)
	}

	if err := database.DB.Save(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Brand already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func deleteBrand(c *gin.Context) {
	id, ok := parseCatalogID(c, "brand")
	if !ok {
		return
	}

	if err := database.DB.Where("brand_id = ?", id).Delete(&models.DeviceModel{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand models"})
		return
	}

	result := database.DB.Delete(&models.Brand{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func createDeviceModel(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		BrandID uint   `json:"brandId"`
		Image   string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	name := utils.CleanString(req.Name)
	if name == "" || req.BrandID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and brandId are required"})
		return
	}

	var brand models.Brand
	if err := database.DB.First(&brand, req.BrandID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	deviceModel := models.DeviceModel{Name: name, BrandID: req.BrandID, Image: utils.CleanString(req.Image)}
	if err := database.DB.Create(&deviceModel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create model"})
		return
	}
	c.JSON(http.StatusCreated, deviceModel)
}

func updateDeviceModel(c *gin.Context) {
	id, ok := parseCatalogID(c, "model")
	if !ok {
		return
	}

	var deviceModel models.DeviceModel
	if err := database.DB.First(&deviceModel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
		return
	}

	var req struct {
		Name    *string `json:"name"`
		BrandID *uint   `json:"brandId"`
		Image   *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if req.Name != nil {
		if name := utils.CleanString(*req.Name); name != "" {
			deviceModel.Name = name
		}
	}
	if req.BrandID != nil && *req.BrandID != 0 {
		var brand models.Brand
		if err := database.DB.First(&brand, *req.BrandID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		deviceModel.BrandID = *req.BrandID
	}
	if req.Image != nil {
		deviceModel.Image = utils.CleanString(*req.Image)
	}

	if err := database.DB.Save(&deviceModel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update model"})
		return
	}
	c.JSON(http.StatusOK, deviceModel)
}

func deleteDeviceModel(c *gin.Context) {
	id, ok := parseCatalogID(c, "model")
	if !ok {
		return
	}

	result := database.DB.Delete(&models.DeviceModel{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete model"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// validateImageFile accepts common image types up to 5MB.
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	switch strings.ToLower(filepath.Ext(h.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

func uploadCatalogImage(c *gin.Context, field, folder string) (string, bool) {
	header, err := c.FormFile(field)
	if err != nil || !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid image file is required"})
		return "", false
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage not configured"})
		return "", false
	}

	cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName))
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage initialization failed"})
		return "", false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return "", false
	}
	defer file.Close()

	overwrite := true
	unique := true
	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Image upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
		return "", false
	}

	log.Printf("✅ Image uploaded: %s", up.SecureURL)
	return up.SecureURL, true
}

func uploadBrandLogo(c *gin.Context) {
	id, ok := parseCatalogID(c, "brand")
	if !ok {
		return
	}

	var brand models.Brand
	if err := database.DB.First(&brand, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	url, ok := uploadCatalogImage(c, "logo", "catalog/brands/"+strconv.Itoa(int(id)))
	if !ok {
		return
	}

	brand.Logo = url
	if err := database.DB.Save(&brand).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save brand"})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func uploadModelImage(c *gin.Context) {
	id, ok := parseCatalogID(c, "model")
	if !ok {
		return
	}

	var deviceModel models.DeviceModel
	if err := database.DB.First(&deviceModel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Model not found"})
		return
	}

	url, ok := uploadCatalogImage(c, "image", "catalog/models/"+strconv.Itoa(int(id)))
	if !ok {
		return
	}

	deviceModel.Image = url
	if err := database.DB.Save(&deviceModel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save model"})
		return
	}
	c.JSON(http.StatusOK, deviceModel)
}
