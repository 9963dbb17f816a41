package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/geo_checkin/internal/config"
	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/shenikar/geo_checkin/internal/proximity"
	"github.com/shenikar/geo_checkin/internal/service"
	"github.com/shenikar/geo_checkin/internal/service/mocks"
	"github.com/shenikar/geo_checkin/internal/visit"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var tunja = models.Site{
	ID:           "2",
	Name:         "Catedral de Tunja",
	Center:       geo.Point{Latitude: 5.53528, Longitude: -73.36778},
	RadiusMeters: 100,
}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockCheckinService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockCheckinService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		StatsTimeWindowMinutes: 60,
		DefaultUserID:          "user_123",
		UploadMaxBytes:         1 << 20,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	handler.RegisterUploadAlias(router)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartBody собирает multipart-форму; пустой file не добавляет поле файла
func multipartBody(t *testing.T, file []byte, fields map[string]string) (io.Reader, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func makeMultipartRequest(router *gin.Engine, url string, body io.Reader, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", contentType)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func insideSession() *visit.Session {
	now := time.Now()
	pos := tunja.Center
	return &visit.Session{
		ID:           uuid.New(),
		UserID:       "maria",
		UserPosition: &pos,
		ClosestSite:  &models.RankedSite{Site: tunja, DistanceMeters: 0},
		IsInside:     true,
		Upload:       visit.UploadNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestListSites(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().ListSites(gomock.Any()).Return([]models.Site{tunja}).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/sites", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []SiteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Catedral de Tunja", resp[0].Name)
	assert.Equal(t, 100.0, resp[0].RadiusMeters)
}

func TestSitesGeoJSON_WithPosition(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	ranked := models.RankedSite{Site: tunja, DistanceMeters: 12}
	mockService.EXPECT().ListSites(gomock.Any()).Return([]models.Site{tunja})
	mockService.EXPECT().
		RankSites(gomock.Any(), geo.Point{Latitude: 5.5353, Longitude: -73.3678}).
		Return(&proximity.Result{Ranked: []models.RankedSite{ranked}, Closest: &ranked, IsInside: true}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/sites/geojson?lat=5.5353&lng=-73.3678", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "2", fc.Features[0].ID)
	assert.Equal(t, []float64{-73.36778, 5.53528}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, true, fc.Features[0].Properties["closest"])
	assert.Equal(t, true, fc.Features[0].Properties["inside"])
}

func TestSitesGeoJSON_OverlappingSites(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	neighbour := models.Site{ID: "5", Name: "Capilla", Center: geo.Point{Latitude: 5.5357, Longitude: -73.3678}, RadiusMeters: 100}
	far := models.Site{ID: "6", Name: "Lejana", Center: geo.Point{Latitude: 5.6, Longitude: -73.8}, RadiusMeters: 100}
	closest := models.RankedSite{Site: tunja, DistanceMeters: 12}
	ranked := []models.RankedSite{
		closest,
		{Site: neighbour, DistanceMeters: 40},
		{Site: far, DistanceMeters: 48000},
	}
	mockService.EXPECT().ListSites(gomock.Any()).Return([]models.Site{tunja, neighbour, far})
	mockService.EXPECT().
		RankSites(gomock.Any(), gomock.Any()).
		Return(&proximity.Result{Ranked: ranked, Closest: &closest, IsInside: true}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/sites/geojson?lat=5.5353&lng=-73.3678", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var fc struct {
		Features []struct {
			ID         string         `json:"id"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	require.Len(t, fc.Features, 3)
	inside := make(map[string]any)
	closestFlags := make(map[string]any)
	for _, f := range fc.Features {
		inside[f.ID] = f.Properties["inside"]
		closestFlags[f.ID] = f.Properties["closest"]
	}
	assert.Equal(t, map[string]any{"2": true, "5": true, "6": false}, inside)
	assert.Equal(t, map[string]any{"2": true, "5": false, "6": false}, closestFlags)
}

func TestSitesGeoJSON_BadCoordinates(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().ListSites(gomock.Any()).Return([]models.Site{tunja})

	w := makeRequest(router, http.MethodGet, "/api/v1/sites/geojson?lat=abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankLocation_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	ranked := models.RankedSite{Site: tunja, DistanceMeters: 250}
	mockService.EXPECT().
		RankSites(gomock.Any(), geo.Point{Latitude: 0, Longitude: 0}).
		Return(&proximity.Result{Ranked: []models.RankedSite{ranked}, Closest: &ranked}, nil)

	// нулевые координаты допустимы
	w := makeRequest(router, http.MethodPost, "/api/v1/location/rank", strings.NewReader(`{"latitude":0,"longitude":0}`))

	require.Equal(t, http.StatusOK, w.Code)
	var resp RankResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Closest)
	assert.Equal(t, 250.0, resp.Closest.DistanceMeters)
	assert.False(t, resp.IsInside)
}

func TestRankLocation_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	for _, body := range []string{`{"latitude":95,"longitude":0}`, `{"longitude":10}`, `not json`} {
		w := makeRequest(router, http.MethodPost, "/api/v1/location/rank", strings.NewReader(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestStartSession_UsesHeaderUser(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sess := visit.NewSession("maria", time.Now())
	mockService.EXPECT().StartSession(gomock.Any(), "maria").Return(sess, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/sessions", nil, map[string]string{"X-User-ID": "maria"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sess.ID, resp.ID)
	assert.Equal(t, "idle", resp.State)
}

func TestStartSession_DefaultUser(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().StartSession(gomock.Any(), "user_123").Return(visit.NewSession("user_123", time.Now()), nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/sessions", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()
	mockService.EXPECT().GetSession(gomock.Any(), id).Return(nil, service.ErrSessionNotFound)

	w := makeRequest(router, http.MethodGet, "/api/v1/sessions/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSession_InvalidID(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportFix_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sess := insideSession()
	mockService.EXPECT().
		ReportFix(gomock.Any(), sess.ID, tunja.Center).
		Return(sess, nil)

	body := `{"latitude":5.53528,"longitude":-73.36778}`
	w := makeRequest(router, http.MethodPost, "/api/v1/sessions/"+sess.ID.String()+"/fix", strings.NewReader(body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "inside", resp.State)
	require.NotNil(t, resp.ClosestSite)
	assert.True(t, resp.ClosestSite.IsInside)
}

func TestRequestRefresh(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sess := insideSession()
	sess.LocateRequests = 1
	mockService.EXPECT().RequestRefresh(gomock.Any(), sess.ID).Return(sess, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/sessions/"+sess.ID.String()+"/refresh", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"locate_requests":1`)
}

func TestConfirmVisit_Conflict(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()
	mockService.EXPECT().
		ConfirmVisit(gomock.Any(), id).
		Return(nil, errors.Join(visit.ErrRejected, errors.New("confirm in state outside")))

	w := makeRequest(router, http.MethodPost, "/api/v1/sessions/"+id.String()+"/confirm", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmVisit_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sess := insideSession()
	sess.VisitConfirmed = true
	sess.ConfirmedSite = sess.ClosestSite
	mockService.EXPECT().ConfirmVisit(gomock.Any(), sess.ID).Return(sess, nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/sessions/"+sess.ID.String()+"/confirm", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.State)
	assert.True(t, resp.VisitConfirmed)
}

func TestUploadSessionPhoto_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sess := insideSession()
	sess.VisitConfirmed = true
	sess.Upload = visit.UploadDone
	sess.PhotoPath = "/uploads/catedral_de_tunja/maria.jpg"
	mockService.EXPECT().UploadSessionPhoto(gomock.Any(), sess.ID, []byte("jpeg")).Return(sess, nil)

	body, ct := multipartBody(t, []byte("jpeg"), nil)
	w := makeMultipartRequest(router, "/api/v1/sessions/"+sess.ID.String()+"/photo", body, ct, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"upload_done"`)
}

func TestUploadSessionPhoto_StorageError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()
	mockService.EXPECT().
		UploadSessionPhoto(gomock.Any(), id, gomock.Any()).
		Return(nil, &errs.StorageError{Op: "save", Path: "x/y.jpg", Err: errors.New("disk full")})

	body, ct := multipartBody(t, []byte("jpeg"), nil)
	w := makeMultipartRequest(router, "/api/v1/sessions/"+id.String()+"/photo", body, ct, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUploadPhoto_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		UploadPhoto(gomock.Any(), "Catedral de Tunja", "maria", []byte("jpeg")).
		Return(&models.UploadResult{Path: "/uploads/catedral_de_tunja/maria.jpg"}, nil)

	body, ct := multipartBody(t, []byte("jpeg"), map[string]string{"parishName": "Catedral de Tunja"})
	w := makeMultipartRequest(router, "/api/v1/upload", body, ct, map[string]string{"X-User-ID": "maria"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "/uploads/catedral_de_tunja/maria.jpg", resp.Path)
}

func TestUploadPhoto_AliasAndFormUser(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		UploadPhoto(gomock.Any(), "Catedral de Tunja", "juan", gomock.Any()).
		Return(&models.UploadResult{Path: "/uploads/catedral_de_tunja/juan.jpg"}, nil)

	body, ct := multipartBody(t, []byte("jpeg"), map[string]string{"parishName": "Catedral de Tunja", "userId": "juan"})
	w := makeMultipartRequest(router, "/api/upload", body, ct, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	_, _, router := newTestHandler(t)

	body, ct := multipartBody(t, nil, map[string]string{"parishName": "Catedral de Tunja"})
	w := makeMultipartRequest(router, "/api/v1/upload", body, ct, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "No file uploaded", resp.Message)
}

func TestUploadPhoto_MissingParishName(t *testing.T) {
	_, _, router := newTestHandler(t)

	body, ct := multipartBody(t, []byte("jpeg"), map[string]string{"parishName": "   "})
	w := makeMultipartRequest(router, "/api/v1/upload", body, ct, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No parish name provided")
}

func TestUploadPhoto_StorageFailure(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		UploadPhoto(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &errs.StorageError{Op: "save", Err: errors.New("read-only file system")})

	body, ct := multipartBody(t, []byte("jpeg"), map[string]string{"parishName": "Catedral de Tunja"})
	w := makeMultipartRequest(router, "/api/v1/upload", body, ct, nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error saving file")
}

func TestUploadPhoto_TooLarge(t *testing.T) {
	_, _, router := newTestHandler(t)

	body, ct := multipartBody(t, bytes.Repeat([]byte("x"), 2<<20), map[string]string{"parishName": "Catedral de Tunja"})
	w := makeMultipartRequest(router, "/api/v1/upload", body, ct, nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestListSiteVisits(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		ListSiteVisits(gomock.Any(), "2", 2, 5).
		Return([]*models.Visit{{ID: uuid.New(), SiteID: "2", UserID: "maria"}}, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/sites/2/visits?page=2&pageSize=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []VisitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "maria", resp[0].UserID)
}

func TestGetStats(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().GetStats(gomock.Any()).Return(3, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatsResponse{VisitorCount: 3, WindowMinutes: 60}, resp)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
