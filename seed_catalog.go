package main

import (
	"log"

	"bookmyrepair-server/database"
	"bookmyrepair-server/models"
)

var defaultBrands = []string{"Apple", "Samsung", "OnePlus", "Xiaomi", "Vivo", "Oppo", "Realme", "Motorola"}

var defaultModelsByBrand = map[string][]string{
	"Apple":    {"iPhone 11", "iPhone 12", "iPhone 13", "iPhone 14"},
	"Samsung":  {"Galaxy S21", "Galaxy S22", "Galaxy A52", "Galaxy M33"},
	"OnePlus":  {"OnePlus 9", "OnePlus 10 Pro", "OnePlus Nord CE", "OnePlus 11R"},
	"Xiaomi":   {"Redmi Note 11", "Redmi Note 12", "Mi 11X", "Xiaomi 12 Pro"},
	"Vivo":     {"Vivo V23", "Vivo V25", "Vivo Y56"},
	"Oppo":     {"Oppo Reno 8", "Oppo F21 Pro", "Oppo A78"},
	"Realme":   {"Realme 9 Pro", "Realme 10", "Realme Narzo 50"},
	"Motorola": {"Moto G52", "Moto G73", "Moto Edge 30"},
}

// seedDefaultCatalog fills the brand and model tables on first boot.
// A non-empty brand table means an operator already manages the catalog.
func seedDefaultCatalog() error {
	var brandCount int64
	if err := database.DB.Model(&models.Brand{}).Count(&brandCount).Error; err != nil {
		return err
	}
	if brandCount > 0 {
		return nil
	}

	brandIDByName := make(map[string]uint, len(defaultBrands))
	for _, name := range defaultBrands {
		brand := models.Brand{Name: name}
		if err := database.DB.Create(&brand).Error; err != nil {
			return err
		}
		brandIDByName[name] = brand.ID
	}

	var deviceModels []models.DeviceModel
	for brandName, modelNames := range defaultModelsByBrand {
		brandID, ok := brandIDByName[brandName]
		if !ok {
			continue
		}
		for _, modelName := range modelNames {
			deviceModels = append(deviceModels, models.DeviceModel{Name: modelName, BrandID: brandID})
		}
	}

	if len(deviceModels) > 0 {
		if err := database.DB.Create(&deviceModels).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Default catalog seeded: brands and models created")
	return nil
}
