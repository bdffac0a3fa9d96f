package sectors

import (
	"context"
	"net/http"
	"strings"

	"central360/internal/middleware"
	"central360/pkg/metadata"
	"central360/pkg/models"

	"github.com/gin-gonic/gin"
)

type SectorStore interface {
	GetSectors(ctx context.Context) ([]models.Sector, error)
	SectorExists(ctx context.Context, code metadata.SectorCode) (bool, error)
	PersistSector(ctx context.Context, code metadata.SectorCode, name string) (*models.Sector, error)
	HasStockItems(ctx context.Context, code metadata.SectorCode) (bool, error)
	DeleteSector(ctx context.Context, code metadata.SectorCode) (bool, error)
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type SectorHandler struct {
	store SectorStore
	cache CacheInvalidator
}

func NewSectorHandler(store SectorStore, cache CacheInvalidator) *SectorHandler {
	return &SectorHandler{store: store, cache: cache}
}

type SectorRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (h *SectorHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	router.GET("/sectors", h.GetSectors)
	router.POST("/sectors", writeLimit, h.CreateSector)
	router.DELETE("/sectors/:code", writeLimit, h.DeleteSector)
}

func (h *SectorHandler) GetSectors(c *gin.Context) {
	sectors, err := h.store.GetSectors(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err, "Error fetching sectors")
		return
	}

	c.JSON(http.StatusOK, sectors)
}

func (h *SectorHandler) CreateSector(c *gin.Context) {
	var req SectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Sector code and name are required"})
		return
	}

	code, err := metadata.NewSectorCode(req.Code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Sector name is required"})
		return
	}

	ctx := c.Request.Context()
	exists, err := h.store.SectorExists(ctx, code)
	if err != nil {
		middleware.AbortWithError(c, err, "Error creating sector")
		return
	}
	if exists {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Sector code already exists"})
		return
	}

	sector, err := h.store.PersistSector(ctx, code, name)
	if err != nil {
		middleware.AbortWithError(c, err, "Sector code already exists")
		return
	}
	h.cache.Invalidate(ctx)

	c.JSON(http.StatusCreated, sector)
}

func (h *SectorHandler) DeleteSector(c *gin.Context) {
	code, err := metadata.NewSectorCode(c.Param("code"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	used, err := h.store.HasStockItems(ctx, code)
	if err != nil {
		middleware.AbortWithError(c, err, "Error deleting sector")
		return
	}
	if used {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Cannot delete sector. It still has stock items."})
		return
	}

	deleted, err := h.store.DeleteSector(ctx, code)
	if err != nil {
		middleware.AbortWithError(c, err, "Error deleting sector")
		return
	}
	if !deleted {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Sector not found"})
		return
	}
	h.cache.Invalidate(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Sector deleted"})
}
