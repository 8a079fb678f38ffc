package handlers

import (
	"net/http"
	"time"

	"dummyblog/api/middleware"
	"dummyblog/models"

	"github.com/gin-gonic/gin"
)

// ExecuteQuery выполняет запрос консоли и записывает его в историю
func ExecuteQuery(c *gin.Context) {
	var req struct {
		Query     string                 `json:"query" binding:"required"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		// Сюда же попадает невалидный JSON в переменных
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	start := time.Now()
	data, err := queryService.Execute(c.Request.Context(), req.Query, req.Variables)
	if err != nil {
		middleware.RecordQueryExecution(models.QueryStatusError, "gateway", time.Since(start))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	middleware.RecordQueryExecution(models.QueryStatusSuccess, "gateway", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetQueryHistory отдает историю запросов, от новых к старым
func GetQueryHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": queryService.History().Items()})
}

// ClearQueryHistory очищает историю запросов
func ClearQueryHistory(c *gin.Context) {
	queryService.History().Clear()
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

// RemoveQueryHistoryItem удаляет одну запись истории
func RemoveQueryHistoryItem(c *gin.Context) {
	queryService.History().Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "History item removed"})
}
