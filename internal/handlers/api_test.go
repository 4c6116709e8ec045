// internal/handlers/api_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/medialicense-backend/internal/broadcast"
	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/config"
	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/queue"
	"github.com/javajoker/medialicense-backend/internal/router"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.Movie{},
		&models.Scene{},
		&models.Song{},
		&models.Track{},
		&models.License{},
	))
	suite.db = db

	cfg := &config.Config{
		Environment: "test",
		Workflow: config.WorkflowConfig{
			SummaryCacheTTL:     300,
			SummaryCacheKey:     "workflow-summary",
			NotificationQueue:   "licensing:notifications",
			MaxAttempts:         3,
			SubscriberBufferLen: 16,
		},
		Email: config.EmailConfig{FallbackTo: "licensing@example.com"},
	}

	suite.router = router.Initialize(db, cfg, cache.NewMemoryStore(), queue.NewMemoryQueue(), broadcast.New(16))
}

func (suite *APITestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// seedTrack drives the catalog endpoints to produce a track with its
// pending license, returning the track and license IDs.
func (suite *APITestSuite) seedTrack() (trackID, licenseID string) {
	w := suite.request("POST", "/v1/movies", gin.H{"title": "Midnight Harbor"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	movie := suite.decode(w)["data"].(map[string]interface{})["movie"].(map[string]interface{})

	w = suite.request("POST", "/v1/scenes", gin.H{
		"name":         "Opening Titles",
		"scene_number": 1,
		"movie_id":     movie["id"],
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	scene := suite.decode(w)["data"].(map[string]interface{})["scene"].(map[string]interface{})

	w = suite.request("POST", "/v1/songs", gin.H{
		"title":  "Tidewater",
		"artist": "The Gaslight Quartet",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	song := suite.decode(w)["data"].(map[string]interface{})["song"].(map[string]interface{})

	w = suite.request("POST", "/v1/tracks", gin.H{
		"name":       "Titles underscore",
		"start_time": 0,
		"end_time":   120,
		"scene_id":   scene["id"],
		"song_id":    song["id"],
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	track := suite.decode(w)["data"].(map[string]interface{})["track"].(map[string]interface{})
	license := track["license"].(map[string]interface{})

	return track["id"].(string), license["id"].(string)
}

func (suite *APITestSuite) TestHealthEndpoint() {
	w := suite.request("GET", "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestTrackCreationReturnsPendingLicense() {
	_, licenseID := suite.seedTrack()

	w := suite.request("GET", "/v1/licenses/"+licenseID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	license := suite.decode(w)["data"].(map[string]interface{})["license"].(map[string]interface{})
	suite.Equal("pending", license["status"])
}

func (suite *APITestSuite) TestStatusTransitionEndpoint() {
	_, licenseID := suite.seedTrack()

	w := suite.request("PATCH", "/v1/licenses/"+licenseID+"/status", gin.H{
		"status":     "in_review",
		"changed_by": "k.ono",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	response := suite.decode(w)
	suite.True(response["success"].(bool))
	license := response["data"].(map[string]interface{})["license"].(map[string]interface{})
	suite.Equal("in_review", license["status"])
	suite.NotNil(license["last_status_change"])
}

func (suite *APITestSuite) TestIllegalTransitionReturns422() {
	_, licenseID := suite.seedTrack()

	w := suite.request("PATCH", "/v1/licenses/"+licenseID+"/status", gin.H{"status": "approved"})
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)

	response := suite.decode(w)
	suite.False(response["success"].(bool))
	apiErr := response["error"].(map[string]interface{})
	suite.Equal("UNPROCESSABLE", apiErr["code"])
	suite.Contains(apiErr["message"], "cannot transition from pending to approved")
}

func (suite *APITestSuite) TestUnknownStatusValueReturns400() {
	_, licenseID := suite.seedTrack()

	w := suite.request("PATCH", "/v1/licenses/"+licenseID+"/status", gin.H{"status": "archived"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestMissingLicenseReturns404() {
	w := suite.request("GET", "/v1/licenses/6b0a73f7-58a3-4c3f-97a6-61a4f8b7f8aa", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request("GET", "/v1/licenses/not-a-uuid", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestWorkflowSummaryEndpoint() {
	_, licenseID := suite.seedTrack()

	w := suite.request("PATCH", "/v1/licenses/"+licenseID+"/status", gin.H{"status": "in_review"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/licenses/workflow/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	summary := suite.decode(w)["data"].(map[string]interface{})["summary"].(map[string]interface{})
	suite.Len(summary, 6)
	suite.Equal(float64(1), summary["in_review"])
	suite.Equal(float64(0), summary["pending"])
}

func (suite *APITestSuite) TestPaginatedLicenseList() {
	suite.seedTrack()

	w := suite.request("GET", "/v1/licenses?page=1&limit=10", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	response := suite.decode(w)
	licenses := response["data"].([]interface{})
	suite.Len(licenses, 1)

	pagination := response["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
	suite.Equal(float64(1), pagination["total"])
	suite.Equal(float64(10), pagination["limit"])
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	w = suite.request("GET", "/v1/licenses?page=2&limit=10", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Empty(suite.decode(w)["data"])
}

func (suite *APITestSuite) TestListByStatusEndpoint() {
	suite.seedTrack()

	w := suite.request("GET", "/v1/licenses/status/pending", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	licenses := suite.decode(w)["data"].(map[string]interface{})["licenses"].([]interface{})
	suite.Len(licenses, 1)

	w = suite.request("GET", "/v1/licenses/status/bogus", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestSongDeleteConflictWhileReferenced() {
	trackID, _ := suite.seedTrack()

	w := suite.request("GET", "/v1/tracks/"+trackID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	track := suite.decode(w)["data"].(map[string]interface{})["track"].(map[string]interface{})
	songID := track["song_id"].(string)

	w = suite.request("DELETE", "/v1/songs/"+songID, nil)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request("DELETE", "/v1/tracks/"+trackID, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.request("DELETE", "/v1/songs/"+songID, nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *APITestSuite) TestValidationErrors() {
	w := suite.request("POST", "/v1/movies", gin.H{"description": "missing title"})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	apiErr := suite.decode(w)["error"].(map[string]interface{})
	suite.Equal("VALIDATION_ERROR", apiErr["code"])
}

func (suite *APITestSuite) TestUpdateValidationErrors() {
	_, licenseID := suite.seedTrack()

	w := suite.request("PUT", "/v1/licenses/"+licenseID, gin.H{"contact_email": "not-an-address"})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", suite.decode(w)["error"].(map[string]interface{})["code"])

	w = suite.request("PUT", "/v1/licenses/"+licenseID, gin.H{"contact_email": "dana@rightsholder.example"})
	suite.Equal(http.StatusOK, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
