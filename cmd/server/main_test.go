package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestIngestEndpoint_MissingMessageID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Mock endpoint with the same validation as the real one
	router.POST("/api/articles", func(c *gin.Context) {
		var article struct {
			MessageID string `json:"telegram_message_id"`
			Title     string `json:"title"`
		}
		if err := c.ShouldBindJSON(&article); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if article.MessageID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_message_id is required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ingested"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/articles", bytes.NewBuffer([]byte(`{"title":"no id"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed JSON is also a 400
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/articles", bytes.NewBuffer([]byte(`{broken`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)

	makeContext := func(target string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)
		return c
	}

	assert.Equal(t, 14, queryInt(makeContext("/api/digest?days=14"), "days", 7))
	assert.Equal(t, 7, queryInt(makeContext("/api/digest"), "days", 7))
	assert.Equal(t, 7, queryInt(makeContext("/api/digest?days=abc"), "days", 7))
	assert.Equal(t, 7, queryInt(makeContext("/api/digest?days=-3"), "days", 7))
	assert.Equal(t, 7, queryInt(makeContext("/api/digest?days=0"), "days", 7))
}
