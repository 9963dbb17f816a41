package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FallsBackToInfo(t *testing.T) {
	log := NewWithOutput("verbose", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log = NewWithOutput("debug", &bytes.Buffer{})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestGinMiddleware_LogsFailedRequests(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware(log))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String(), "successful requests are logged at debug level")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "/missing", entry["path"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
}
