package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staffdesk/employee-manager/internal/database/models"
	"github.com/staffdesk/employee-manager/internal/database/repository"
	"github.com/staffdesk/employee-manager/internal/database/service"
)

const defaultListLimit = 100

// EmployeeHandler handles HTTP requests for the employee collection
type EmployeeHandler struct {
	service service.EmployeeService
	logger  *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(service service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

type UpdateEmployeeRequest struct {
	Name         *string              `json:"name"`
	Email        *string              `json:"email"`
	Position     *string              `json:"position"`
	PersonalInfo *models.PersonalInfo `json:"personalInfo"`
	Contacts     *models.Contacts     `json:"contacts"`
	Salary       *models.Salary       `json:"salary"`
	Address      *models.Address      `json:"address"`
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	filter := repository.EmployeeFilter{
		Search:   c.Query("search"),
		Position: c.Query("position"),
		Limit:    intQuery(c, "limit", defaultListLimit),
		Skip:     intQuery(c, "skip", 0),
	}

	employees, total, err := h.service.List(filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"employees": employees,
		"total":     total,
		"limit":     filter.Limit,
		"skip":      filter.Skip,
	}, "Employees fetched successfully")
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Position == "" {
		respondError(c, http.StatusBadRequest, "Name, email, and position are required")
		return
	}

	employee, err := h.service.Create(service.CreateEmployeeInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, employee, "Employee created successfully")
}

// Get handles GET /api/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	employee, err := h.service.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, employee, "Employee fetched successfully")
}

// Update handles PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	employee, err := h.service.Update(id, service.UpdateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		PersonalInfo: req.PersonalInfo,
		Contacts:     req.Contacts,
		Salary:       req.Salary,
		Address:      req.Address,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, employee, "Employee updated successfully")
}

// Delete handles DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	employee, err := h.service.Delete(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, employee, "Employee deleted successfully")
}

// employeeID validates the path id before any store access.
func (h *EmployeeHandler) employeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid employee ID format")
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

// handleServiceError maps service errors to HTTP responses
func (h *EmployeeHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrEmployeeNotFound):
		respondError(c, http.StatusNotFound, "Employee not found")
	case errors.Is(err, service.ErrEmployeeEmailTaken):
		respondError(c, http.StatusConflict, "Employee with this email already exists")
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, "Invalid email format")
	case errors.Is(err, service.ErrNoUpdateFields):
		respondError(c, http.StatusBadRequest, "At least one field must be provided")
	case errors.Is(err, service.ErrNameLength),
		errors.Is(err, service.ErrPositionLength),
		errors.Is(err, service.ErrInvalidSalaryFrequency):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
