// controllers/studio.go
package controllers

import (
	"errors"
	"net/http"

	"studiobook-backend/config"
	"studiobook-backend/models"
	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateStudioInput defines the expected JSON structure for creating a studio
type CreateStudioInput struct {
	Subdomain string         `json:"subdomain" binding:"required,min=3,max=63"`
	Name      string         `json:"name" binding:"required"`
	Slug      string         `json:"slug" binding:"required"`
	LogoURL   string         `json:"logoUrl"`
	Theme     datatypes.JSON `json:"theme"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
}

// UpdateStudioInput defines the expected JSON structure for updating a studio
type UpdateStudioInput struct {
	Name    *string         `json:"name"`
	LogoURL *string         `json:"logoUrl"`
	Theme   *datatypes.JSON `json:"theme"`
	Phone   *string         `json:"phone"`
	Email   *string         `json:"email"`
	Address *string         `json:"address"`
}

// CreateStudio registers a new tenant
func CreateStudio(c *gin.Context) {
	var input CreateStudioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Subdomains are globally unique
	var existing models.Studio
	if err := config.DB.Where("subdomain = ?", input.Subdomain).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Subdomain already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	studio := models.Studio{
		Subdomain: input.Subdomain,
		Name:      input.Name,
		Slug:      input.Slug,
		LogoURL:   input.LogoURL,
		Theme:     input.Theme,
		Plan:      models.PlanTrial,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
	}

	if err := config.DB.Create(&studio).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create studio")
		return
	}

	c.JSON(http.StatusCreated, studio)
}

// GetStudio retrieves a studio by ID
func GetStudio(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	var studio models.Studio
	if err := config.DB.First(&studio, "id = ?", studioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Studio not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, studio)
}

// UpdateStudio applies a partial update to a studio
func UpdateStudio(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	var input UpdateStudioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var studio models.Studio
	if err := config.DB.First(&studio, "id = ?", studioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Studio not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}
	if input.Theme != nil {
		updates["theme"] = *input.Theme
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&studio).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update studio")
			return
		}
	}

	c.JSON(http.StatusOK, studio)
}
