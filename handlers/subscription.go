package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/middleware"
	"tillpoint/services/subscription"
)

// SubscriptionHandler exposes the billing lifecycle for admins and the
// payment review surface for superadmins.
type SubscriptionHandler struct {
	SubSvc subscription.SubscriptionService
	Logger *zap.Logger
}

// Subscribe handles POST /api/subscriptions for the logged-in admin.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var body struct {
		PlanType string `json:"planType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.SubSvc.Subscribe(c.GetString(middleware.ContextUserID), body.PlanType)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// GetMySubscription handles GET /api/subscriptions/mine. The status is
// refreshed against the end date on every read.
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	sub, err := h.SubSvc.GetForAdmin(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// SubmitReceipt handles POST /api/subscriptions/receipt with a multipart file.
func (h *SubscriptionHandler) SubmitReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read receipt upload"})
		return
	}
	defer file.Close()

	sub, err := h.SubSvc.SubmitReceipt(c.GetString(middleware.ContextUserID), file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Unsubscribe handles DELETE /api/subscriptions/mine.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	if err := h.SubSvc.Unsubscribe(c.GetString(middleware.ContextUserID)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscription removed"})
}

// GetAll handles GET /api/subscriptions (superadmin only).
func (h *SubscriptionHandler) GetAll(c *gin.Context) {
	subs, err := h.SubSvc.GetAll()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetPending handles GET /api/subscriptions/pending (superadmin only).
func (h *SubscriptionHandler) GetPending(c *gin.Context) {
	subs, err := h.SubSvc.GetPending()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// CreateForAdmin handles POST /api/subscriptions/create (superadmin only).
func (h *SubscriptionHandler) CreateForAdmin(c *gin.Context) {
	var body struct {
		AdminID  string `json:"adminId" binding:"required"`
		PlanType string `json:"planType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.SubSvc.Subscribe(body.AdminID, body.PlanType)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// Approve handles POST /api/subscriptions/:id/approve (superadmin only).
func (h *SubscriptionHandler) Approve(c *gin.Context) {
	sub, err := h.SubSvc.Approve(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Reject handles POST /api/subscriptions/:id/reject (superadmin only).
func (h *SubscriptionHandler) Reject(c *gin.Context) {
	sub, err := h.SubSvc.Reject(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ExpireSoon handles POST /api/subscriptions/:id/expire-soon (superadmin only).
func (h *SubscriptionHandler) ExpireSoon(c *gin.Context) {
	sub, err := h.SubSvc.ExpireSoon(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ExpireNow handles POST /api/subscriptions/:id/expire-now (superadmin only).
func (h *SubscriptionHandler) ExpireNow(c *gin.Context) {
	sub, err := h.SubSvc.ExpireNow(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Edit handles PUT /api/subscriptions/:id (superadmin only).
func (h *SubscriptionHandler) Edit(c *gin.Context) {
	var body subscription.EditSubscriptionInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.SubSvc.Edit(c.Param("id"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
