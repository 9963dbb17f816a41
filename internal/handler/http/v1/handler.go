package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/geo_checkin/internal/config"
	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/proximity"
	"github.com/shenikar/geo_checkin/internal/service"
	"github.com/shenikar/geo_checkin/internal/visit"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	checkinService service.CheckinService
	logger         *logrus.Logger
	validate       *validator.Validate
	cfg            *config.Config
}

func NewHandler(checkinService service.CheckinService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		checkinService: checkinService,
		logger:         logger,
		validate:       validator.New(),
		cfg:            cfg,
	}
}

// @Summary List geofence sites
// @Description Get the current registry: built-in sites followed by spreadsheet sites.
// @Tags Sites
// @Produce json
// @Success 200 {array} SiteResponse
// @Router /sites [get]
func (h *Handler) listSites(c *gin.Context) {
	sites := h.checkinService.ListSites(c.Request.Context())
	c.JSON(http.StatusOK, ModelsToSiteResponses(sites))
}

// @Summary Sites as GeoJSON
// @Description Map layer with one point per site. With lat/lng, features carry distance and closest flags.
// @Tags Sites
// @Produce json
// @Param lat query number false "User latitude"
// @Param lng query number false "User longitude"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Router /sites/geojson [get]
func (h *Handler) sitesGeoJSON(c *gin.Context) {
	log := h.logger.WithField("method", "sitesGeoJSON")
	ctx := c.Request.Context()
	sites := h.checkinService.ListSites(ctx)

	var result *proximity.Result
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" || lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must both be numbers"})
			return
		}
		var err error
		result, err = h.checkinService.RankSites(ctx, geo.Point{Latitude: lat, Longitude: lng})
		if err != nil {
			h.respondError(c, log, err)
			return
		}
	}

	c.JSON(http.StatusOK, SitesToFeatureCollection(sites, result))
}

// @Summary List visits of a site
// @Description Get confirmed visits of a site, newest first.
// @Tags Sites
// @Produce json
// @Param id path string true "Site ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} VisitResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sites/{id}/visits [get]
func (h *Handler) listSiteVisits(c *gin.Context) {
	siteID := c.Param("id")
	log := h.logger.WithField("method", "listSiteVisits").WithField("site_id", siteID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	visits, err := h.checkinService.ListSiteVisits(c.Request.Context(), siteID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list visits from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToVisitResponses(visits))
}

// @Summary Rank sites by distance
// @Description Rank all sites by distance from a position without creating a session.
// @Tags Location
// @Accept json
// @Produce json
// @Param location body LocationRequest true "User position"
// @Success 200 {object} RankResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /location/rank [post]
func (h *Handler) rankLocation(c *gin.Context) {
	log := h.logger.WithField("method", "rankLocation")
	position, ok := h.bindLocation(c, log)
	if !ok {
		return
	}

	result, err := h.checkinService.RankSites(c.Request.Context(), position)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ResultToRankResponse(result))
}

// @Summary Start a visit session
// @Description Create an idle session for the caller (X-User-ID header or the default user).
// @Tags Sessions
// @Produce json
// @Param X-User-ID header string false "User ID"
// @Success 201 {object} SessionResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions [post]
func (h *Handler) startSession(c *gin.Context) {
	log := h.logger.WithField("method", "startSession")

	sess, err := h.checkinService.StartSession(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SessionToResponse(sess))
}

// @Summary Get a visit session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid session ID"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id} [get]
func (h *Handler) getSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getSession").WithField("session_id", id)

	sess, err := h.checkinService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SessionToResponse(sess))
}

// @Summary Report a position fix
// @Description Apply a new user position; the closest site and inside/outside state are recomputed.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param location body LocationRequest true "User position"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/fix [post]
func (h *Handler) reportFix(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "reportFix").WithField("session_id", id)
	position, ok := h.bindLocation(c, log)
	if !ok {
		return
	}

	sess, err := h.checkinService.ReportFix(c.Request.Context(), id, position)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SessionToResponse(sess))
}

// @Summary Request a new position
// @Description Record that the user asked to locate again; the session state does not change.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/refresh [post]
func (h *Handler) requestRefresh(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "requestRefresh").WithField("session_id", id)

	sess, err := h.checkinService.RequestRefresh(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SessionToResponse(sess))
}

// @Summary Confirm a visit
// @Description Confirm the visit to the closest site. Allowed only while inside its radius.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Not inside a site"
// @Router /sessions/{id}/confirm [post]
func (h *Handler) confirmVisit(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "confirmVisit").WithField("session_id", id)

	sess, err := h.checkinService.ConfirmVisit(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SessionToResponse(sess))
}

// @Summary Upload the visit photo
// @Description Upload a photo for the confirmed visit. A failed upload can be retried.
// @Tags Sessions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file true "Photo"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "No file uploaded"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Visit not confirmed"
// @Failure 500 {object} map[string]string "Error saving file"
// @Router /sessions/{id}/photo [post]
func (h *Handler) uploadSessionPhoto(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "uploadSessionPhoto").WithField("session_id", id)

	photo, status, msg := h.readPhoto(c)
	if status != 0 {
		c.JSON(status, gin.H{"error": msg})
		return
	}

	sess, err := h.checkinService.UploadSessionPhoto(c.Request.Context(), id, photo)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SessionToResponse(sess))
}

// @Summary Upload a photo
// @Description Store a photo under the sanitized site name and user id. Re-uploading overwrites.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo"
// @Param parishName formData string true "Site name"
// @Param userId formData string false "User ID (defaults to X-User-ID or the default user)"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} UploadResponse "No file uploaded / No parish name provided"
// @Failure 413 {object} UploadResponse "File too large"
// @Failure 500 {object} UploadResponse "Error saving file"
// @Router /upload [post]
func (h *Handler) uploadPhoto(c *gin.Context) {
	log := h.logger.WithField("method", "uploadPhoto")

	photo, status, msg := h.readPhoto(c)
	if status != 0 {
		c.JSON(status, UploadResponse{Success: false, Message: msg})
		return
	}

	siteName := c.PostForm("parishName")
	if strings.TrimSpace(siteName) == "" {
		c.JSON(http.StatusBadRequest, UploadResponse{Success: false, Message: "No parish name provided"})
		return
	}
	userID := c.PostForm("userId")
	if userID == "" {
		userID = userIDFrom(c)
	}

	result, err := h.checkinService.UploadPhoto(c.Request.Context(), siteName, userID, photo)
	if err != nil {
		if errs.IsValidation(err) {
			log.WithError(err).Warn("Rejected upload")
			c.JSON(http.StatusBadRequest, UploadResponse{Success: false, Message: err.Error()})
			return
		}
		log.WithError(err).Error("Failed to save uploaded photo")
		c.JSON(http.StatusInternalServerError, UploadResponse{Success: false, Message: "Error saving file"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:       true,
		Path:          result.Path,
		ThumbnailPath: result.ThumbnailPath,
	})
}

// @Summary Get visitor statistics
// @Description Get the number of distinct users who confirmed a visit in the stats window.
// @Tags Admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	count, err := h.checkinService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{VisitorCount: count, WindowMinutes: h.cfg.StatsTimeWindowMinutes})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bindLocation(c *gin.Context, log *logrus.Entry) (geo.Point, bool) {
	var input LocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return geo.Point{}, false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *input.Latitude, Longitude: *input.Longitude}, true
}

// readPhoto читает поле file с ограничением размера. Ненулевой status - ответ об ошибке.
func (h *Handler) readPhoto(c *gin.Context) ([]byte, int, string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.UploadMaxBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, "File too large"
		}
		return nil, http.StatusBadRequest, "No file uploaded"
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, http.StatusBadRequest, "No file uploaded"
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, http.StatusInternalServerError, "Error saving file"
	}
	if len(data) == 0 {
		return nil, http.StatusBadRequest, "No file uploaded"
	}
	return data, 0, ""
}

// respondError переводит ошибки сервиса в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errs.IsValidation(err):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, visit.ErrRejected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errs.IsStorage(err):
		log.WithError(err).Error("Storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving file"})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}
