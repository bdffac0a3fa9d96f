package stockitems

import (
	"context"
	"net/http"
	"strconv"

	"central360/internal/middleware"
	"central360/internal/repository"
	"central360/pkg/auditlog"
	"central360/pkg/metadata"
	"central360/pkg/models"

	"github.com/gin-gonic/gin"
)

type ItemStore interface {
	GetStockItemsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.StockItem, error)
	GetStockItem(ctx context.Context, id int) (*models.StockItem, error)
	NameTaken(ctx context.Context, name, sectorCode string, excludeID int) (bool, error)
	PersistStockItem(ctx context.Context, req StockItemRequest) (*models.StockItem, error)
	UpdateStockItem(ctx context.Context, id int, req StockItemRequest) (*models.StockItem, error)
	DeleteStockItem(ctx context.Context, id int) (*models.StockItem, error)
}

type SectorLookup interface {
	SectorExists(ctx context.Context, code metadata.SectorCode) (bool, error)
}

type HistoryReader interface {
	GetResourceLog(ctx context.Context, id int, resourceTypes ...string) ([]models.AuditLog, error)
}

type Auditor interface {
	Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable)
}

// CacheInvalidator drops cached overall stock views, which embed item names and sectors.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type StockItemHandler struct {
	items   ItemStore
	sectors SectorLookup
	history HistoryReader
	auditor Auditor
	cache   CacheInvalidator
}

func NewStockItemHandler(items ItemStore, sectors SectorLookup, history HistoryReader, auditor Auditor, cache CacheInvalidator) *StockItemHandler {
	return &StockItemHandler{
		items:   items,
		sectors: sectors,
		history: history,
		auditor: auditor,
		cache:   cache,
	}
}

func (h *StockItemHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	router.GET("/stock-items", h.GetStockItems)
	router.GET("/stock-items/:id", h.GetStockItem)
	router.GET("/stock-items/:id/logs", h.GetStockItemLogs)
	router.POST("/stock-items", writeLimit, h.CreateStockItem)
	router.PUT("/stock-items/:id", writeLimit, h.UpdateStockItem)
	router.DELETE("/stock-items/:id", writeLimit, h.DeleteStockItem)
}

func (h *StockItemHandler) GetStockItems(c *gin.Context) {
	var query StockItemQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()
	if query.Sector != "" {
		conditions.AddCondition("sector", query.Sector)
	}

	items, err := h.items.GetStockItemsBy(c.Request.Context(), conditions)
	if err != nil {
		middleware.AbortWithError(c, err, "Error fetching stock items")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *StockItemHandler) GetStockItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := h.items.GetStockItem(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err, "Error fetching stock item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetStockItemLogs returns catalog changes and baseline updates recorded for the item.
func (h *StockItemHandler) GetStockItemLogs(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	logs, err := h.history.GetResourceLog(c.Request.Context(), id, "stock_item", "overall_stock")
	if err != nil {
		middleware.AbortWithError(c, err, "Error fetching stock item logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *StockItemHandler) CreateStockItem(c *gin.Context) {
	req, ok := h.bindItemRequest(c, 0)
	if !ok {
		return
	}

	item, err := h.items.PersistStockItem(c.Request.Context(), req)
	if err != nil {
		middleware.AbortWithError(c, err, "Error creating stock item")
		return
	}
	h.cache.Invalidate(c.Request.Context())

	h.auditor.Log(c.Request.Context(), "create", map[string]interface{}{
		"item_name":   item.ItemName,
		"sector_code": item.SectorCode,
		"msg":         "Stock item registered",
	}, item)

	c.JSON(http.StatusCreated, item)
}

func (h *StockItemHandler) UpdateStockItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	req, ok := h.bindItemRequest(c, id)
	if !ok {
		return
	}

	item, err := h.items.UpdateStockItem(c.Request.Context(), id, req)
	if err != nil {
		middleware.AbortWithError(c, err, "Error updating stock item")
		return
	}
	h.cache.Invalidate(c.Request.Context())

	h.auditor.Log(c.Request.Context(), "update", req, item)

	c.JSON(http.StatusOK, item)
}

func (h *StockItemHandler) DeleteStockItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := h.items.DeleteStockItem(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err, "Error deleting stock item")
		return
	}
	h.cache.Invalidate(c.Request.Context())

	h.auditor.Log(c.Request.Context(), "delete", map[string]interface{}{
		"item_name":   item.ItemName,
		"sector_code": item.SectorCode,
	}, item)

	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted successfully"})
}

// bindItemRequest validates the body, the sector reference and name uniqueness within the sector.
func (h *StockItemHandler) bindItemRequest(c *gin.Context, excludeID int) (StockItemRequest, bool) {
	var req StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return req, false
	}
	if err := req.normalize(); err != nil {
		middleware.AbortWithError(c, err, "Invalid request payload")
		return req, false
	}

	ctx := c.Request.Context()
	exists, err := h.sectors.SectorExists(ctx, metadata.SectorCode(req.SectorCode))
	if err != nil {
		middleware.AbortWithError(c, err, "Error checking sector")
		return req, false
	}
	if !exists {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Sector not found"})
		return req, false
	}

	taken, err := h.items.NameTaken(ctx, req.ItemName, req.SectorCode, excludeID)
	if err != nil {
		middleware.AbortWithError(c, err, "Error checking stock item")
		return req, false
	}
	if taken {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Stock item already exists for this sector"})
		return req, false
	}

	return req, true
}

func itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid stock item ID"})
		return 0, false
	}
	return id, true
}
