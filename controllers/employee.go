// controllers/employee.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"studiobook-backend/config"
	"studiobook-backend/models"
	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateEmployeeInput defines the expected JSON structure for creating an employee
type CreateEmployeeInput struct {
	Name         string              `json:"name" binding:"required"`
	Title        string              `json:"title"`
	Bio          string              `json:"bio"`
	PhotoURL     string              `json:"photoUrl"`
	WorkingHours models.WorkingHours `json:"workingHours"`
	BufferTime   *int                `json:"bufferTime"`
}

// UpdateEmployeeInput defines the expected JSON structure for updating an employee
type UpdateEmployeeInput struct {
	Name         *string              `json:"name"`
	Title        *string              `json:"title"`
	Bio          *string              `json:"bio"`
	PhotoURL     *string              `json:"photoUrl"`
	WorkingHours *models.WorkingHours `json:"workingHours"`
	BufferTime   *int                 `json:"bufferTime"`
	IsActive     *bool                `json:"isActive"`
}

// CreateTimeOffInput defines the expected JSON structure for a blackout interval
type CreateTimeOffInput struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Reason    string    `json:"reason"`
}

func validBufferTime(minutes int) bool {
	return minutes >= 0 && minutes <= 60
}

// CreateEmployee creates a new employee for the studio
func CreateEmployee(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	var input CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.WorkingHours != nil {
		if err := input.WorkingHours.Validate(); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid working hours: "+err.Error())
			return
		}
	}
	if input.BufferTime != nil && !validBufferTime(*input.BufferTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Buffer time must be between 0 and 60 minutes")
		return
	}

	var studio models.Studio
	if err := config.DB.Select("id").First(&studio, "id = ?", studioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Studio not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	employee := models.Employee{
		StudioID:     studioID,
		Name:         input.Name,
		Title:        input.Title,
		Bio:          input.Bio,
		PhotoURL:     input.PhotoURL,
		WorkingHours: input.WorkingHours,
		IsActive:     true,
	}
	if input.BufferTime != nil {
		employee.BufferTime = *input.BufferTime
	} else {
		employee.BufferTime = 15
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployees retrieves all employees for the studio
func GetEmployees(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	query := config.DB.Where("studio_id = ?", studioID)
	if c.DefaultQuery("activeOnly", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var employees []models.Employee
	if err := query.Order("name ASC").Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// GetEmployee retrieves a specific employee by ID
func GetEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee applies a partial update; only fields present in the patch
// are touched.
func UpdateEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.PhotoURL != nil {
		updates["photo_url"] = *input.PhotoURL
	}
	if input.WorkingHours != nil {
		if err := input.WorkingHours.Validate(); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid working hours: "+err.Error())
			return
		}
		updates["working_hours"] = *input.WorkingHours
	}
	if input.BufferTime != nil {
		if !validBufferTime(*input.BufferTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Buffer time must be between 0 and 60 minutes")
			return
		}
		updates["buffer_time"] = *input.BufferTime
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&employee).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
			return
		}
	}

	c.JSON(http.StatusOK, employee)
}

// CreateTimeOff records a blackout interval for an employee. Slots inside it
// are never offered.
func CreateTimeOff(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input CreateTimeOffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.EndTime.After(input.StartTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "End time must be after start time")
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

	timeOff := models.EmployeeTimeOff{
		EmployeeID: employeeID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Reason:     input.Reason,
	}
	if err := config.DB.Create(&timeOff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create time off")
		return
	}

	c.JSON(http.StatusCreated, timeOff)
}

// GetTimeOff lists an employee's blackout intervals
func GetTimeOff(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var timeOff []models.EmployeeTimeOff
	if err := config.DB.Where("employee_id = ?", employeeID).Order("start_time ASC").Find(&timeOff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time off")
		return
	}

	c.JSON(http.StatusOK, timeOff)
}

// DeleteTimeOff removes a blackout interval
func DeleteTimeOff(c *gin.Context) {
	timeOffID, err := uuid.Parse(c.Param("timeOffId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time off ID format")
		return
	}

	result := config.DB.Delete(&models.EmployeeTimeOff{}, "id = ?", timeOffID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete time off")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Time off not found")
		return
	}

	c.Status(http.StatusNoContent)
}
