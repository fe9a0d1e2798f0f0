package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onflows/telemetry-backend-go/internal/models"
	"github.com/onflows/telemetry-backend-go/internal/service"
	"github.com/onflows/telemetry-backend-go/internal/strava"
	"github.com/onflows/telemetry-backend-go/pkg/response"
)

// ProcessActivityRequest is the body of POST /activities/:id/process.
type ProcessActivityRequest struct {
	StartUTC  time.Time        `json:"start_utc" binding:"required"`
	SportType string           `json:"sport_type"`
	WindowS   int              `json:"window_s"`
	Streams   strava.StreamSet `json:"streams" binding:"required"`
}

// SyncRequest is the body of POST /sync. The access token is supplied by
// the caller; this service does no OAuth.
type SyncRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	N           int    `json:"n"`
}

// ActivityHandler handles HTTP requests for activity processing and reads
type ActivityHandler struct {
	ingestService   *service.IngestService
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(ingestService *service.IngestService, activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		ingestService:   ingestService,
		activityService: activityService,
	}
}

// ProcessActivity handles POST /api/v1/activities/:id/process
func (h *ActivityHandler) ProcessActivity(c *gin.Context) {
	activityID, ok := h.activityID(c)
	if !ok {
		return
	}

	var req ProcessActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid process request: "+err.Error())
		return
	}

	result, err := h.ingestService.ProcessStreams(activityID, req.SportType, req.StartUTC, req.WindowS, req.Streams)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// SyncActivities handles POST /api/v1/sync
func (h *ActivityHandler) SyncActivities(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid sync request")
		return
	}

	client := strava.NewClient(req.AccessToken)
	imported, err := h.ingestService.ImportLastN(c.Request.Context(), client, req.N)
	if err != nil {
		response.BadGateway(c, err.Error())
		return
	}

	response.Success(c, gin.H{"imported": imported})
}

// ListActivities handles GET /api/v1/activities
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	activities, err := h.activityService.ListActivities(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  activities,
		"count": len(activities),
	})
}

// GetRows handles GET /api/v1/activities/:id/rows
func (h *ActivityHandler) GetRows(c *gin.Context) {
	activityID, ok := h.activityID(c)
	if !ok {
		return
	}

	var filter models.RowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.activityService.GetRows(activityID, filter)
	if err != nil {
		h.readError(c, err)
		return
	}

	response.Success(c, result)
}

// GetArtifacts handles GET /api/v1/activities/:id/artifacts
func (h *ActivityHandler) GetArtifacts(c *gin.Context) {
	activityID, ok := h.activityID(c)
	if !ok {
		return
	}

	var filter models.ArtifactFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	artifacts, err := h.activityService.GetArtifacts(activityID, filter)
	if err != nil {
		h.readError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  artifacts,
		"count": len(artifacts),
	})
}

// GetWindows handles GET /api/v1/activities/:id/windows
func (h *ActivityHandler) GetWindows(c *gin.Context) {
	activityID, ok := h.activityID(c)
	if !ok {
		return
	}

	var filter models.WindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	windows, err := h.activityService.GetWindows(activityID, filter)
	if err != nil {
		h.readError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  windows,
		"count": len(windows),
	})
}

func (h *ActivityHandler) activityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return 0, false
	}
	return id, true
}

func (h *ActivityHandler) readError(c *gin.Context, err error) {
	if strings.Contains(err.Error(), "not found") {
		response.NotFound(c, err.Error())
		return
	}
	response.InternalError(c, err.Error())
}
