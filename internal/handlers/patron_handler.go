package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/superiortours/booking-backend/internal/database"
	"github.com/superiortours/booking-backend/internal/models"
	"github.com/superiortours/booking-backend/pkg/validator"
)

// PatronHandler serves the patron CRUD surface
type PatronHandler struct {
	patronRepo     *database.PatronRepository
	phoneValidator *validator.PhoneValidator
}

// NewPatronHandler creates a new PatronHandler
func NewPatronHandler(patronRepo *database.PatronRepository, phoneValidator *validator.PhoneValidator) *PatronHandler {
	return &PatronHandler{
		patronRepo:     patronRepo,
		phoneValidator: phoneValidator,
	}
}

// ListPatrons retrieves active patrons with search and pagination
// GET /api/patrons
func (h *PatronHandler) ListPatrons(c *gin.Context) {
	params := database.PatronListParams{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "name"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	patrons, total, err := h.patronRepo.List(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patrons":       patrons,
		"total_pages":   totalPages(total, params.Limit),
		"current_page":  params.Page,
		"total_patrons": total,
	})
}

// QuickSearch returns up to 10 patrons matching name or phone
// GET /api/patrons/search/quick
func (h *PatronHandler) QuickSearch(c *gin.Context) {
	q := c.Query("q")
	if len(q) < 2 {
		c.JSON(http.StatusOK, gin.H{"patrons": []models.Patron{}})
		return
	}

	patrons, err := h.patronRepo.QuickSearch(q, 10)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"patrons": patrons})
}

// GetPatron retrieves a patron by ID
// GET /api/patrons/:id
func (h *PatronHandler) GetPatron(c *gin.Context) {
	patron, err := h.patronRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patron)
}

// CreatePatron creates a new patron. The phone number must not be in
// use by another active patron.
// POST /api/patrons
func (h *PatronHandler) CreatePatron(c *gin.Context) {
	var req models.CreatePatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone, err := h.phoneValidator.Validate(req.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.patronRepo.GetActiveByPhone(phone, "")
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondError(c, models.ErrDuplicatePhone)
		return
	}

	patron := &models.Patron{
		Name:             req.Name,
		Phone:            phone,
		Address:          req.Address,
		Email:            req.Email,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
	}

	if err := h.patronRepo.Create(patron); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, patron)
}

// UpdatePatron updates every editable patron field. A phone change is
// re-checked for uniqueness against other active patrons.
// PUT /api/patrons/:id
func (h *PatronHandler) UpdatePatron(c *gin.Context) {
	var req models.UpdatePatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone, err := h.phoneValidator.Validate(req.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patron, err := h.patronRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if phone != patron.Phone {
		conflict, err := h.patronRepo.GetActiveByPhone(phone, patron.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if conflict != nil {
			respondError(c, models.ErrDuplicatePhone)
			return
		}
	}

	patron.Name = req.Name
	patron.Phone = phone
	patron.Address = req.Address
	patron.Email = req.Email
	patron.EmergencyContact = req.EmergencyContact
	patron.Notes = req.Notes

	if err := h.patronRepo.Update(patron); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patron)
}

// DeletePatron soft-deletes a patron
// DELETE /api/patrons/:id
func (h *PatronHandler) DeletePatron(c *gin.Context) {
	if err := h.patronRepo.Deactivate(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patron deleted successfully"})
}

// queryInt parses an integer query parameter with a default
func queryInt(c *gin.Context, key string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}

// totalPages returns the page count for a result set
func totalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
