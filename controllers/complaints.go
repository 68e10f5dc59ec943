package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/services"
)

func (h *Handler) PostComplaint(c *gin.Context) {
	var input services.ComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	complaint, err := h.Complaints.File(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Complaint registered successfully", "complaint": complaint})
}

// GetComplaints lists complaints, optionally filtered by ?status=.
func (h *Handler) GetComplaints(c *gin.Context) {
	complaints, err := h.Complaints.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": complaints})
}

func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var input struct {
		ComplaintID string `json:"complaintId"`
		Status      string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	complaint, err := h.Complaints.UpdateStatus(c.Request.Context(), input.ComplaintID, input.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Complaint status updated successfully", "complaint": complaint})
}
