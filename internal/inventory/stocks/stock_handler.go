package stocks

import (
	"net/http"

	"central360/internal/middleware"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	service *StockService
}

func NewStockHandler(s *StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	router.GET("/overall-stock", h.GetOverallStock)
	router.PUT("/overall-stock", writeLimit, h.UpdateOverallStock)
	router.GET("/daily-stock", h.GetDailyStock)
	router.PUT("/daily-stock", writeLimit, h.UpdateDailyStock)
}

func (h *StockHandler) GetOverallStock(c *gin.Context) {
	var query OverallStockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	stocks, err := h.service.OverallStock(c.Request.Context(), query)
	if err != nil {
		middleware.AbortWithError(c, err, "Error fetching overall stock")
		return
	}

	c.JSON(http.StatusOK, stocks)
}

func (h *StockHandler) UpdateOverallStock(c *gin.Context) {
	var batch BaselineBatchRequest
	if err := c.ShouldBindJSON(&batch); err != nil {
		middleware.AbortWithBadRequest(c, err, "Updates must be an array")
		return
	}

	stocks, err := h.service.UpdateBaselines(c.Request.Context(), batch.Updates)
	if err != nil {
		middleware.AbortWithError(c, err, "Error updating overall stock")
		return
	}

	c.JSON(http.StatusOK, stocks)
}

func (h *StockHandler) GetDailyStock(c *gin.Context) {
	var query DailyStockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.AbortWithBadRequest(c, err, "Invalid query parameters")
		return
	}

	events, err := h.service.DailyStock(c.Request.Context(), query)
	if err != nil {
		middleware.AbortWithError(c, err, "Error fetching daily stock")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *StockHandler) UpdateDailyStock(c *gin.Context) {
	var batch ConsumptionBatchRequest
	if err := c.ShouldBindJSON(&batch); err != nil {
		middleware.AbortWithBadRequest(c, err, "Updates must be an array")
		return
	}

	events, err := h.service.RecordConsumption(c.Request.Context(), c.Query("date"), batch.Updates)
	if err != nil {
		middleware.AbortWithError(c, err, "Error updating daily stock")
		return
	}

	c.JSON(http.StatusOK, events)
}
