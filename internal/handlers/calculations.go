package handlers

import (
	"net/http"
	"strconv"

	"calcapi/internal/service"

	"github.com/gin-gonic/gin"
)

// calculationRequest is the Add/Edit payload. Operands are pointers so a
// literal 0 still satisfies the required binding.
type calculationRequest struct {
	Operation string   `json:"operation" binding:"required"` // add | subtract | multiply | divide (aliases accepted)
	OperandA  *float64 `json:"operand_a" binding:"required"`
	OperandB  *float64 `json:"operand_b" binding:"required"`
}

func (r calculationRequest) toSpec() service.CalculationSpec {
	return service.CalculationSpec{
		Operation: r.Operation,
		OperandA:  *r.OperandA,
		OperandB:  *r.OperandB,
	}
}

// parsePageParam reads a non-negative integer query parameter, returning
// def when absent. Malformed values are a client error, not a clamp.
func parsePageParam(c *gin.Context, name string, def int) (int, bool) {
	qs := c.Query(name)
	if qs == "" {
		return def, true
	}
	v, err := strconv.Atoi(qs)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid '" + name + "': must be a non-negative integer"})
		return 0, false
	}
	return v, true
}

// @Summary      Add a calculation
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        input  body      calculationRequest  true  "operation and operands"
// @Success      201    {object}  models.Calculation
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/v1/calculations [post]
// @Security     BearerAuth
func (h *Handler) addCalculation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	var input calculationRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	calc, err := h.services.Calculations.Create(c.Request.Context(), userID, input.toSpec())
	if err != nil {
		h.respondServiceError(c, err, "calculation_add_failed", "userId", userID)
		return
	}

	c.JSON(http.StatusCreated, calc)
}

// @Summary      Browse calculations
// @Tags         calculations
// @Produce      json
// @Param        offset  query     int  false  "page offset"  default(0)
// @Param        limit   query     int  false  "page size, capped at 100"  default(50)
// @Success      200     {object}  map[string]interface{}  "count, calculations"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/v1/calculations [get]
// @Security     BearerAuth
func (h *Handler) browseCalculations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	offset, ok := parsePageParam(c, "offset", 0)
	if !ok {
		return
	}
	limit, ok := parsePageParam(c, "limit", 0)
	if !ok {
		return
	}

	calcs, err := h.services.Calculations.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		h.respondServiceError(c, err, "calculation_browse_failed", "userId", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(calcs),
		"calculations": calcs,
	})
}

// @Summary      Read a calculation
// @Tags         calculations
// @Produce      json
// @Param        id   path      string  true  "calculation id"
// @Success      200  {object}  models.Calculation
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/calculations/{id} [get]
// @Security     BearerAuth
func (h *Handler) readCalculation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	calc, err := h.services.Calculations.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "calculation_read_failed", "userId", userID, "id", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, calc)
}

// @Summary      Edit a calculation
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "calculation id"
// @Param        input  body      calculationRequest  true  "new operation and operands"
// @Success      200    {object}  models.Calculation
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/calculations/{id} [put]
// @Security     BearerAuth
func (h *Handler) editCalculation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	var input calculationRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	calc, err := h.services.Calculations.Update(c.Request.Context(), userID, c.Param("id"), input.toSpec())
	if err != nil {
		h.respondServiceError(c, err, "calculation_edit_failed", "userId", userID, "id", c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, calc)
}

// @Summary      Delete a calculation
// @Tags         calculations
// @Produce      json
// @Param        id   path  string  true  "calculation id"
// @Success      204  "deleted"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/calculations/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCalculation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	if err := h.services.Calculations.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondServiceError(c, err, "calculation_delete_failed", "userId", userID, "id", c.Param("id"))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary      Calculation stats
// @Tags         calculations
// @Produce      json
// @Success      200  {object}  models.CalculationStats
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/calculations/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	stats, err := h.services.Stats.Stats(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, err, "calculation_stats_failed", "userId", userID)
		return
	}

	c.JSON(http.StatusOK, stats)
}
