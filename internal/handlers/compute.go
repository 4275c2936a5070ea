package handlers

import (
	"net/http"

	"calcapi/internal/service"

	"github.com/gin-gonic/gin"
)

// computeRequest mirrors calculationRequest but nothing is persisted.
type computeRequest struct {
	Operation string   `json:"operation" binding:"required"`
	A         *float64 `json:"a" binding:"required"`
	B         *float64 `json:"b" binding:"required"`
}

// @Summary      Evaluate an operation without storing it
// @Tags         compute
// @Accept       json
// @Produce      json
// @Param        input  body      computeRequest  true  "operation and operands"
// @Success      200    {object}  map[string]float64  "result"
// @Failure      400    {object}  map[string]string
// @Router       /compute [post]
func (h *Handler) compute(c *gin.Context) {
	var input computeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	op, err := service.ParseOperation(input.Operation)
	if err != nil {
		h.respondServiceError(c, err, "compute_failed")
		return
	}
	result, err := service.Compute(op, *input.A, *input.B)
	if err != nil {
		h.respondServiceError(c, err, "compute_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
