package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krosec/sec-guard/internal/model"
	"github.com/krosec/sec-guard/internal/service"
)

type contractRequest struct {
	ClientID    int64   `json:"client_id" binding:"required"`
	ServiceID   int64   `json:"service_id" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	TotalAmount float64 `json:"total_amount"`
}

type approveContractRequest struct {
	SecurityEmployeeID int64  `json:"security_employee_id" binding:"required"`
	ShiftStartTime     string `json:"shift_start_time" binding:"required"`
	ShiftEndTime       string `json:"shift_end_time" binding:"required"`
	Notes              string `json:"notes"`
}

type guardObjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
}

func (h *Handler) listContracts(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		contracts, err := h.contracts.ListContractsByStatus(c.Request.Context(), status)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, contracts)
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) createContract(c *gin.Context) {
	input, ok := h.bindContractInput(c)
	if !ok {
		return
	}
	contract, err := h.contracts.CreateContract(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.bindContractInput(c)
	if !ok {
		return
	}
	contract, err := h.contracts.UpdateContract(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contracts.DeleteContract(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindContractInput(c *gin.Context) (service.ContractInput, bool) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ContractInput{}, false
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return service.ContractInput{}, false
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return service.ContractInput{}, false
	}
	return service.ContractInput{
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: req.TotalAmount,
	}, true
}

func (h *Handler) validateContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.contracts.ValidateForApproval(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) approveContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req approveContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.Approve(c.Request.Context(), id, service.ApprovalInput{
		SecurityEmployeeID: req.SecurityEmployeeID,
		ShiftStartTime:     req.ShiftStartTime,
		ShiftEndTime:       req.ShiftEndTime,
		Notes:              req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) listContractSchedules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	schedules, err := h.contracts.ListSchedules(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *Handler) listGuardObjects(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	objects, err := h.contracts.ListGuardObjects(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, objects)
}

func (h *Handler) createGuardObject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req guardObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	object, err := h.contracts.AddGuardObject(c.Request.Context(), id, model.GuardObject{
		Name:        req.Name,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, object)
}

func (h *Handler) listClientContracts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contracts, err := h.contracts.ListContractsByClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}
