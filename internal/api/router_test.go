package api

import (
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflows/telemetry-backend-go/internal/config"
	"github.com/onflows/telemetry-backend-go/internal/database"
	"github.com/onflows/telemetry-backend-go/internal/handler"
	"github.com/onflows/telemetry-backend-go/internal/pipeline"
	"github.com/onflows/telemetry-backend-go/internal/repository"
	"github.com/onflows/telemetry-backend-go/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "telemetry-api-test")
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Init(database.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		log.Fatal(err)
	}

	code := m.Run()

	database.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func testRouter() *gin.Engine {
	db := database.GetDB()
	activityRepo := repository.NewActivityRepository(db)
	rowRepo := repository.NewRowRepository(db)
	artifactRepo := repository.NewArtifactRepository(db)
	windowRepo := repository.NewWindowRepository(db)

	ingest := service.NewIngestService(activityRepo, rowRepo, artifactRepo, windowRepo, pipeline.DefaultThresholds())
	read := service.NewActivityService(activityRepo, rowRepo, artifactRepo, windowRepo)

	cfg := &config.Config{
		RateLimit:       1000,
		RateLimitWindow: time.Minute,
	}
	return SetupRouter(cfg, handler.NewActivityHandler(ingest, read))
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(testRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestProcessAndReadBack(t *testing.T) {
	r := testRouter()

	body := `{
		"start_utc": "2024-06-01T08:00:00Z",
		"sport_type": "Run",
		"streams": {
			"time":            {"data": [0, 1, 2, 3, 4]},
			"velocity_smooth": {"data": [2.5, 2.5, 0.1, 2.5, 2.5]},
			"heartrate":       {"data": [140, 141, 142, 143, 144]}
		}
	}`
	rec := doRequest(r, http.MethodPost, "/api/v1/activities/9001/process", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"rows":5`)

	rec = doRequest(r, http.MethodGet, "/api/v1/activities/9001/rows", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":5`)

	rec = doRequest(r, http.MethodGet, "/api/v1/activities/9001/windows", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"q_score"`)

	rec = doRequest(r, http.MethodGet, "/api/v1/activities/9001/artifacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(r, http.MethodGet, "/api/v1/activities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count"`)
}

func TestProcessRejectsInvalidBody(t *testing.T) {
	r := testRouter()

	rec := doRequest(r, http.MethodPost, "/api/v1/activities/9002/process", `{"sport_type": "Run"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(r, http.MethodPost, "/api/v1/activities/not-a-number/process", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadUnknownActivityReturns404(t *testing.T) {
	rec := doRequest(testRouter(), http.MethodGet, "/api/v1/activities/424242/rows", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestSyncRequiresAccessToken(t *testing.T) {
	rec := doRequest(testRouter(), http.MethodPost, "/api/v1/sync", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(testRouter(), http.MethodOptions, "/api/v1/activities", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
