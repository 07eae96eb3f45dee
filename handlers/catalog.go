package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tillpoint/middleware"
	"tillpoint/services/catalog"
)

// CatalogHandler exposes the business/service/item hierarchy.
type CatalogHandler struct {
	CatalogSvc catalog.CatalogService
	Logger     *zap.Logger
}

func (h *CatalogHandler) callerID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// CreateBusiness handles POST /api/business.
func (h *CatalogHandler) CreateBusiness(c *gin.Context) {
	var body catalog.BusinessInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	biz, err := h.CatalogSvc.CreateBusiness(h.callerID(c), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, biz)
}

// GetMyBusiness handles GET /api/business/mine.
func (h *CatalogHandler) GetMyBusiness(c *gin.Context) {
	biz, err := h.CatalogSvc.GetMyBusiness(h.callerID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// ListBusinesses handles GET /api/business.
func (h *CatalogHandler) ListBusinesses(c *gin.Context) {
	all, err := h.CatalogSvc.ListBusinesses()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// GetBusiness handles GET /api/business/:businessId.
func (h *CatalogHandler) GetBusiness(c *gin.Context) {
	biz, err := h.CatalogSvc.GetBusiness(c.Param("businessId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// UpdateBusiness handles PUT /api/business/:businessId.
func (h *CatalogHandler) UpdateBusiness(c *gin.Context) {
	var body catalog.BusinessInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	biz, err := h.CatalogSvc.UpdateBusiness(h.callerID(c), c.Param("businessId"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// DeleteBusiness handles DELETE /api/business/:businessId.
func (h *CatalogHandler) DeleteBusiness(c *gin.Context) {
	if err := h.CatalogSvc.DeleteBusiness(h.callerID(c), c.Param("businessId")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "business deleted"})
}

// CreateService handles POST /api/business/:businessId/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var body catalog.ServiceInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	svc, err := h.CatalogSvc.CreateService(h.callerID(c), c.Param("businessId"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// ListServices handles GET /api/business/:businessId/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.CatalogSvc.ListServices(c.Param("businessId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// UpdateService handles PUT /api/business/:businessId/services/:serviceId.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var body catalog.ServiceInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	err := h.CatalogSvc.UpdateService(h.callerID(c), c.Param("businessId"), c.Param("serviceId"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service updated"})
}

// DeleteService handles DELETE /api/business/:businessId/services/:serviceId.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	err := h.CatalogSvc.DeleteService(h.callerID(c), c.Param("businessId"), c.Param("serviceId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

// CreateItem handles POST /api/business/:businessId/services/:serviceId/items.
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var body catalog.ItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	item, err := h.CatalogSvc.CreateItem(h.callerID(c), c.Param("businessId"), c.Param("serviceId"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListItems handles GET /api/business/:businessId/services/:serviceId/items.
// Public so customer devices can browse the menu; ?category= filters.
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.CatalogSvc.ListItems(c.Param("businessId"), c.Param("serviceId"), c.Query("category"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateItem handles PUT /api/business/:businessId/services/:serviceId/items/:itemId.
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	var body catalog.ItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	err := h.CatalogSvc.UpdateItem(h.callerID(c), c.Param("businessId"), c.Param("serviceId"), c.Param("itemId"), body)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

// DeleteItem handles DELETE /api/business/:businessId/services/:serviceId/items/:itemId.
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	err := h.CatalogSvc.DeleteItem(h.callerID(c), c.Param("businessId"), c.Param("serviceId"), c.Param("itemId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// UploadItemImage handles POST .../items/:itemId/image with a multipart file.
func (h *CatalogHandler) UploadItemImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image upload"})
		return
	}
	defer file.Close()

	url, err := h.CatalogSvc.UploadItemImage(h.callerID(c), c.Param("businessId"), c.Param("serviceId"), c.Param("itemId"), file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
