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

func setupOutcomeRouter(handler *OutcomeHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/offers", handler.CreateOffer)
	r.GET("/offers", handler.ListOffers)
	r.DELETE("/offers/:id", handler.DeleteOffer)
	r.POST("/rejections", handler.CreateRejection)
	r.GET("/rejections", handler.ListRejections)
	r.DELETE("/rejections/:id", handler.DeleteRejection)
	return r
}

func newOutcomeHandler(outcomeRepo *mocks.OutcomeRepositoryMock, jobRepo *mocks.JobRepositoryMock) *OutcomeHandler {
	return NewOutcomeHandler(outcomeRepo, jobRepo, cache.New(time.Minute))
}

func TestCreateOfferMovesJobStatus(t *testing.T) {
	outcomeRepo := new(mocks.OutcomeRepositoryMock)
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupOutcomeRouter(newOutcomeHandler(outcomeRepo, jobRepo))

	jobRepo.On("GetJob", mock.Anything, 4).
		Return(models.Job{ID: 4, UserID: 1, Status: models.JobStatusInterview}, nil).Once()
	outcomeRepo.On("CreateOffer", mock.Anything, mock.MatchedBy(func(o models.Offer) bool {
		return o.UserID == 1 && o.JobID == 4
	})).Return(models.Offer{ID: 1, JobID: 4}, nil).Once()
	jobRepo.On("UpdateJobStatus", mock.Anything, 4, models.JobStatusOffer, (*time.Time)(nil)).Return(nil).Once()

	body := bytes.NewBufferString(`{"job_id":4,"amount":"95000"}`)
	req := httptest.NewRequest(http.MethodPost, "/offers", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	outcomeRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}

func TestCreateOfferOnTerminalJob(t *testing.T) {
	outcomeRepo := new(mocks.OutcomeRepositoryMock)
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupOutcomeRouter(newOutcomeHandler(outcomeRepo, jobRepo))

	jobRepo.On("GetJob", mock.Anything, 4).
		Return(models.Job{ID: 4, UserID: 1, Status: models.JobStatusRejected}, nil).Once()

	body := bytes.NewBufferString(`{"job_id":4}`)
	req := httptest.NewRequest(http.MethodPost, "/offers", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already rejected")
	outcomeRepo.AssertNotCalled(t, "CreateOffer")
}

func TestCreateOfferDuplicate(t *testing.T) {
	outcomeRepo := new(mocks.OutcomeRepositoryMock)
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupOutcomeRouter(newOutcomeHandler(outcomeRepo, jobRepo))

	jobRepo.On("GetJob", mock.Anything, 4).
		Return(models.Job{ID: 4, UserID: 1, Status: models.JobStatusInterview}, nil).Once()
	outcomeRepo.On("CreateOffer", mock.Anything, mock.Anything).
		Return(models.Offer{}, repositories.ErrOutcomeExists).Once()

	body := bytes.NewBufferString(`{"job_id":4}`)
	req := httptest.NewRequest(http.MethodPost, "/offers", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	jobRepo.AssertNotCalled(t, "UpdateJobStatus")
}

func TestCreateOfferForOthersJob(t *testing.T) {
	outcomeRepo := new(mocks.OutcomeRepositoryMock)
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupOutcomeRouter(newOutcomeHandler(outcomeRepo, jobRepo))

	jobRepo.On("GetJob", mock.Anything, 4).
		Return(models.Job{ID: 4, UserID: 2, Status: models.JobStatusInterview}, nil).Once()

	body := bytes.NewBufferString(`{"job_id":4}`)
	req := httptest.NewRequest(http.MethodPost, "/offers", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	outcomeRepo.AssertNotCalled(t, "CreateOffer")
}

func TestCreateRejectionMovesJobStatus(t *testing.T) {
	outcomeRepo := new(mocks.OutcomeRepositoryMock)
	jobRepo := new(mocks.JobRepositoryMock)
	router := setupOutcomeRouter(newOutcomeHandler(outcomeRepo, jobRepo))

	jobRepo.On("GetJob", mock.Anything, 4).
		Return(models.Job{ID: 4, UserID: 1, Status: models.JobStatusApplied}, nil).Once()
	outcomeRepo.On("CreateRejection", mock.Anything, mock.Anything).
		Return(models.Rejection{ID: 1, JobID: 4}, nil).Once()
	jobRepo.On("UpdateJobStatus", mock.Anything, 4, models.JobStatusRejected, (*time.Time)(nil)).Return(nil).Once()

	body := bytes.NewBufferString(`{"job_id":4,"reason":"position filled"}`)
	req := httptest.NewRequest(http.MethodPost, "/rejections", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	outcomeRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}

func TestDeleteOfferNotFound(t *testing.T) {
	outcomeRepo := new(mocks.OutcomeRepositoryMock)
	router := setupOutcomeRouter(newOutcomeHandler(outcomeRepo, new(mocks.JobRepositoryMock)))

	outcomeRepo.On("DeleteOffer", mock.Anything, 9, 1).Return(repositories.ErrOfferNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/offers/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	outcomeRepo.AssertExpectations(t)
}
