package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"career-service/internal/cache"
	"career-service/internal/mocks"
	"career-service/internal/models"
	"career-service/internal/repositories"
)

func setupConnectionRouter(handler *ConnectionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/connections/:userId/request", handler.Request)
	r.PUT("/connections/:id/accept", handler.Accept)
	r.PUT("/connections/:id/reject", handler.Reject)
	r.GET("/connections", handler.List)
	r.GET("/connections/pending", handler.ListPending)
	return r
}

func newConnectionHandler(connRepo *mocks.ConnectionRepositoryMock, userRepo *mocks.UserRepositoryMock) *ConnectionHandler {
	return NewConnectionHandler(connRepo, userRepo, cache.New(time.Minute), time.Minute, nil)
}

func TestRequestConnection(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, userRepo))

	userRepo.On("GetUserByID", mock.Anything, 2).Return(models.User{ID: 2}, nil).Once()
	connRepo.On("CreateRequest", mock.Anything, 1, 2).
		Return(models.Connection{ID: 5, RequesterID: 1, ReceiverID: 2, Status: models.ConnectionStatusPending}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/connections/2/request", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	connRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestRequestConnectionToSelf(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	req := httptest.NewRequest(http.MethodPost, "/connections/1/request", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	connRepo.AssertNotCalled(t, "CreateRequest")
}

func TestRequestConnectionDuplicate(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, userRepo))

	userRepo.On("GetUserByID", mock.Anything, 2).Return(models.User{ID: 2}, nil).Once()
	connRepo.On("CreateRequest", mock.Anything, 1, 2).
		Return(models.Connection{}, repositories.ErrConnectionExists).Once()

	req := httptest.NewRequest(http.MethodPost, "/connections/2/request", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestRequestConnectionUnknownUser(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, userRepo))

	userRepo.On("GetUserByID", mock.Anything, 99).Return(models.User{}, repositories.ErrUserNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/connections/99/request", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	connRepo.AssertNotCalled(t, "CreateRequest")
}

func TestAcceptConnection(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	connRepo.On("GetConnection", mock.Anything, 5).
		Return(models.Connection{ID: 5, RequesterID: 2, ReceiverID: 1, Status: models.ConnectionStatusPending}, nil).Once()
	connRepo.On("UpdateStatus", mock.Anything, 5, models.ConnectionStatusAccepted).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/connections/5/accept", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	connRepo.AssertExpectations(t)
}

func TestAcceptConnectionNotReceiver(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	connRepo.On("GetConnection", mock.Anything, 5).
		Return(models.Connection{ID: 5, RequesterID: 1, ReceiverID: 2, Status: models.ConnectionStatusPending}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/connections/5/accept", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	connRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAcceptConnectionNotPending(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	connRepo.On("GetConnection", mock.Anything, 5).
		Return(models.Connection{ID: 5, RequesterID: 2, ReceiverID: 1, Status: models.ConnectionStatusAccepted}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/connections/5/accept", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	connRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestRejectConnectionDeletesRow(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	connRepo.On("GetConnection", mock.Anything, 5).
		Return(models.Connection{ID: 5, RequesterID: 2, ReceiverID: 1, Status: models.ConnectionStatusPending}, nil).Once()
	connRepo.On("DeleteConnection", mock.Anything, 5).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/connections/5/reject", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	connRepo.AssertExpectations(t)
}

func TestListConnectionsCacheAside(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	connRepo.On("ListAccepted", mock.Anything, 1).
		Return([]models.Connection{{ID: 5, Status: models.ConnectionStatusAccepted}}, nil).Once()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/connections", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	connRepo.AssertNumberOfCalls(t, "ListAccepted", 1)
}

func TestListPendingConnections(t *testing.T) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	router := setupConnectionRouter(newConnectionHandler(connRepo, new(mocks.UserRepositoryMock)))

	connRepo.On("ListPending", mock.Anything, 1).
		Return([]models.Connection{{ID: 6, ReceiverID: 1, Status: models.ConnectionStatusPending}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/connections/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	connRepo.AssertExpectations(t)
}
