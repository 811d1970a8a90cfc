package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkpal/parkpal-backend/internal/store/fixture"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/middleware"
	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
}

func handlerTestSpaces() []types.ParkingSpace {
	two := 2
	zero := 0
	return []types.ParkingSpace{
		{
			ID:           "kennington",
			Title:        "Secure driveway",
			Location:     "Kennington",
			Address:      "14 Braganza Street, London",
			Postcode:     "SE17 3RD",
			PricePerDay:  decimal.NewFromInt(12),
			TotalSpaces:  &two,
			BookedSpaces: &zero,
		},
		{
			ID:           "vauxhall",
			Title:        "Riverside car park",
			Location:     "Vauxhall",
			Address:      "5 Albert Embankment, London",
			Postcode:     "SE1 7TP",
			PricePerDay:  decimal.NewFromInt(15),
			TotalSpaces:  &two,
			BookedSpaces: &two,
		},
	}
}

func newSpaceRouter() *gin.Engine {
	inventory := services.NewInventoryService(fixture.NewInventoryFromSpaces(handlerTestSpaces()))
	handler := NewSpaceHandler(inventory, nil)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/v1/spaces", handler.ListSpaces)
	router.GET("/v1/spaces/:id", handler.GetSpace)
	router.POST("/v1/spaces/search", handler.SearchSpaces)
	return router
}

func TestListSpaces(t *testing.T) {
	router := newSpaceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/spaces", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var spaces []types.ParkingSpace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spaces))
	assert.Len(t, spaces, 2)
}

func TestListSpacesAvailableOnly(t *testing.T) {
	router := newSpaceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/spaces?available=true", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var spaces []types.ParkingSpace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spaces))
	require.Len(t, spaces, 1)
	assert.Equal(t, "kennington", spaces[0].ID)
}

func TestGetSpaceNotFound(t *testing.T) {
	router := newSpaceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/spaces/nope", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SPACE_NOT_FOUND", resp.Type)
}

func TestSearchSpaces(t *testing.T) {
	router := newSpaceRouter()

	body, _ := json.Marshal(types.SearchRequest{Message: "parking in Kennington"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/spaces/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "kennington", resp.Results[0].ID)
	require.NotNil(t, resp.Constraints.Location)
}

func TestSearchSpacesRejectsBadJSON(t *testing.T) {
	router := newSpaceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/spaces/search", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
