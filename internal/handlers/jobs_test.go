package handlers

import (
	"bytes"
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

func setupJobRouter(handler *JobHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/jobs", handler.CreateJob)
	r.GET("/jobs", handler.ListJobs)
	r.GET("/jobs/:id", handler.GetJob)
	r.PUT("/jobs/:id", handler.UpdateJob)
	r.PUT("/jobs/:id/status", handler.UpdateJobStatus)
	r.DELETE("/jobs/:id", handler.DeleteJob)
	return r
}

func newJobHandler(jobRepo *mocks.JobRepositoryMock) *JobHandler {
	return NewJobHandler(jobRepo, cache.New(time.Minute), time.Minute, nil)
}

func TestCreateJobDefaultsToSaved(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("CreateJob", mock.Anything, mock.MatchedBy(func(job models.Job) bool {
		return job.UserID == 1 && job.Status == models.JobStatusSaved && job.AppliedAt == nil
	})).Return(models.Job{ID: 10, UserID: 1, Status: models.JobStatusSaved}, nil).Once()

	body := bytes.NewBufferString(`{"title":"Backend Engineer","company":"Acme"}`)
	req := httptest.NewRequest(http.MethodPost, "/jobs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	jobRepo.AssertExpectations(t)
}

func TestCreateJobAppliedSetsTimestamp(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("CreateJob", mock.Anything, mock.MatchedBy(func(job models.Job) bool {
		return job.Status == models.JobStatusApplied && job.AppliedAt != nil
	})).Return(models.Job{ID: 11}, nil).Once()

	body := bytes.NewBufferString(`{"title":"SRE","company":"Acme","status":"applied"}`)
	req := httptest.NewRequest(http.MethodPost, "/jobs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	jobRepo.AssertExpectations(t)
}

func TestCreateJobUnknownStatus(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	body := bytes.NewBufferString(`{"title":"SRE","company":"Acme","status":"ghosted"}`)
	req := httptest.NewRequest(http.MethodPost, "/jobs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	jobRepo.AssertNotCalled(t, "CreateJob")
}

func TestListJobsCacheAside(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("ListJobs", mock.Anything, 1).Return([]models.Job{{ID: 1, UserID: 1}}, nil).Once()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Second request served from cache; repo hit exactly once.
	jobRepo.AssertExpectations(t)
	jobRepo.AssertNumberOfCalls(t, "ListJobs", 1)
}

func TestCreateJobInvalidatesListCache(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("ListJobs", mock.Anything, 1).Return([]models.Job{}, nil).Twice()
	jobRepo.On("CreateJob", mock.Anything, mock.Anything).Return(models.Job{ID: 1}, nil).Once()

	listReq := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	router.ServeHTTP(httptest.NewRecorder(), listReq)

	createReq := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(`{"title":"a","company":"b"}`))
	router.ServeHTTP(httptest.NewRecorder(), createReq)

	listAgain := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	router.ServeHTTP(httptest.NewRecorder(), listAgain)

	jobRepo.AssertExpectations(t)
}

func TestGetJobForbiddenForOtherUser(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("GetJob", mock.Anything, 5).Return(models.Job{ID: 5, UserID: 2}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/jobs/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	jobRepo.AssertExpectations(t)
}

func TestGetJobNotFound(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("GetJob", mock.Anything, 99).Return(models.Job{}, repositories.ErrJobNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/jobs/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateJobStatusTerminalConflict(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("GetJob", mock.Anything, 3).Return(models.Job{ID: 3, UserID: 1, Status: models.JobStatusRejected}, nil).Once()

	body := bytes.NewBufferString(`{"status":"applied"}`)
	req := httptest.NewRequest(http.MethodPut, "/jobs/3/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already rejected")
	jobRepo.AssertNotCalled(t, "UpdateJobStatus")
}

func TestUpdateJobStatusAppliedStampsOnce(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("GetJob", mock.Anything, 3).Return(models.Job{ID: 3, UserID: 1, Status: models.JobStatusSaved}, nil).Once()
	jobRepo.On("UpdateJobStatus", mock.Anything, 3, models.JobStatusApplied, mock.MatchedBy(func(ts *time.Time) bool {
		return ts != nil
	})).Return(nil).Once()

	body := bytes.NewBufferString(`{"status":"applied"}`)
	req := httptest.NewRequest(http.MethodPut, "/jobs/3/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	jobRepo.AssertExpectations(t)
}

func TestDeleteJob(t *testing.T) {
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupJobRouter(newJobHandler(jobRepo))

	jobRepo.On("GetJob", mock.Anything, 4).Return(models.Job{ID: 4, UserID: 1}, nil).Once()
	jobRepo.On("DeleteJob", mock.Anything, 4).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/jobs/4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	jobRepo.AssertExpectations(t)
}
