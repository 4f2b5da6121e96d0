// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"studiobook-backend/config"
	"studiobook-backend/models"
	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	ImageURL     string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"imageUrl"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// AssignServiceInput defines the expected JSON structure for assigning a
// service to an employee with its price and duration
type AssignServiceInput struct {
	ServiceID string  `json:"serviceId" binding:"required"`
	Price     float64 `json:"price" binding:"required,min=0"`
	Duration  int     `json:"duration" binding:"required,min=1"` // in minutes
}

// UpdateAssignmentInput defines the expected JSON structure for updating an
// employee-service assignment
type UpdateAssignmentInput struct {
	Price    *float64 `json:"price"`
	Duration *int     `json:"duration"`
	IsActive *bool    `json:"isActive"`
}

// CreateService creates a new service for the studio
func CreateService(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		StudioID:     studioID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if service.Category == "" {
		service.Category = "General"
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the studio
func GetServices(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	var services []models.Service
	if err := config.DB.Where("studio_id = ?", studioID).
		Order("display_order ASC, name ASC").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// UpdateService applies a partial update to a service
func UpdateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DisplayOrder != nil {
		updates["display_order"] = *input.DisplayOrder
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&service).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
			return
		}
	}

	c.JSON(http.StatusOK, service)
}

// AssignService creates an employee-service assignment fixing price and
// duration for that pair. Slot generation and booking creation read duration
// and price from here, never from the service itself.
func AssignService(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input AssignServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var employee models.Employee
	if err := config.DB.Select("id").First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	var service models.Service
	if err := config.DB.Select("id").First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// One assignment per (employee, service) pair
	var existing models.EmployeeService
	if err := config.DB.Where("employee_id = ? AND service_id = ?", employeeID, serviceID).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Service already assigned to this employee")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	assignment := models.EmployeeService{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Price:      input.Price,
		Duration:   input.Duration,
		IsActive:   true,
	}
	if err := config.DB.Create(&assignment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign service")
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetEmployeeServices lists an employee's service assignments
func GetEmployeeServices(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var assignments []models.EmployeeService
	if err := config.DB.Where("employee_id = ?", employeeID).Find(&assignments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assignments")
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// UpdateAssignment applies a partial update to an employee-service
// assignment. Existing bookings keep their snapshotted price.
func UpdateAssignment(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("assignmentId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}

	var input UpdateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var assignment models.EmployeeService
	if err := config.DB.First(&assignment, "id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Assignment not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	updates := map[string]interface{}{}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
			return
		}
		updates["price"] = *input.Price
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be positive")
			return
		}
		updates["duration"] = *input.Duration
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&assignment).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update assignment")
			return
		}
	}

	c.JSON(http.StatusOK, assignment)
}
