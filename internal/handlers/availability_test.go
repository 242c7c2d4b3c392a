package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"career-service/internal/mocks"
	"career-service/internal/models"
)

func setupAvailabilityRouter(handler *AvailabilityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/availability", handler.CreateWindow)
	r.GET("/availability", handler.ListWindows)
	r.DELETE("/availability/reset", handler.ResetDate)
	return r
}

func TestCreateRecurringWindow(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	repo.On("CreateWindow", mock.Anything, mock.MatchedBy(func(w models.AvailabilityWindow) bool {
		return w.OwnerID == 1 && w.DayOfWeek == 1 && w.IsRecurring
	})).Return(models.AvailabilityWindow{ID: 1}, nil).Once()

	body := bytes.NewBufferString(`{"day_of_week":1,"start_time":"2024-01-01T09:00:00Z","end_time":"2024-01-01T17:00:00Z","is_recurring":true}`)
	req := httptest.NewRequest(http.MethodPost, "/availability", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestCreateWindowEndBeforeStart(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	body := bytes.NewBufferString(`{"start_time":"2024-01-01T17:00:00Z","end_time":"2024-01-01T09:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/availability", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "CreateWindow")
}

func TestCreateWindowBadDayOfWeek(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	body := bytes.NewBufferString(`{"day_of_week":7,"start_time":"2024-01-01T09:00:00Z","end_time":"2024-01-01T17:00:00Z","is_recurring":true}`)
	req := httptest.NewRequest(http.MethodPost, "/availability", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "CreateWindow")
}

func TestCreateOneOffWindowDerivesWeekday(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	// 2024-06-05 is a Wednesday.
	repo.On("CreateWindow", mock.Anything, mock.MatchedBy(func(w models.AvailabilityWindow) bool {
		return !w.IsRecurring && w.DayOfWeek == 3
	})).Return(models.AvailabilityWindow{ID: 2}, nil).Once()

	body := bytes.NewBufferString(`{"start_time":"2024-06-05T13:00:00Z","end_time":"2024-06-05T14:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/availability", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestListWindows(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	repo.On("ListWindows", mock.Anything, 1).Return([]models.AvailabilityWindow{{ID: 1, OwnerID: 1}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestResetDate(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	expected := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	repo.On("ResetWindowsForDate", mock.Anything, 1, expected).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/availability/reset?date=2024-06-03", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestResetDateMissingParam(t *testing.T) {
	repo := new(mocks.AvailabilityRepositoryMock)
	router := setupAvailabilityRouter(NewAvailabilityHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/availability/reset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "ResetWindowsForDate")
}
