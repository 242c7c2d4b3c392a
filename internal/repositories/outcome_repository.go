package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"career-service/internal/models"
)

var (
	ErrOfferNotFound     = errors.New("offer not found")
	ErrRejectionNotFound = errors.New("rejection not found")
	ErrOutcomeExists     = errors.New("job already has an outcome of this kind")
)

// OutcomeRepository persists offers and rejections tied to jobs.
type OutcomeRepository interface {
	CreateOffer(ctx context.Context, offer models.Offer) (models.Offer, error)
	ListOffers(ctx context.Context, userID int) ([]models.Offer, error)
	DeleteOffer(ctx context.Context, offerID, userID int) error
	CreateRejection(ctx context.Context, rejection models.Rejection) (models.Rejection, error)
	ListRejections(ctx context.Context, userID int) ([]models.Rejection, error)
	DeleteRejection(ctx context.Context, rejectionID, userID int) error
}

// OutcomeRepo is a sqlx implementation of OutcomeRepository.
type OutcomeRepo struct {
	db *sqlx.DB
}

// NewOutcomeRepo constructs an OutcomeRepo.
func NewOutcomeRepo(db *sqlx.DB) *OutcomeRepo {
	return &OutcomeRepo{db: db}
}

// CreateOffer inserts an offer; at most one per job.
func (r *OutcomeRepo) CreateOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	var created models.Offer
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO offers (user_id, job_id, amount, offer_date, deadline, notes)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, user_id, job_id, amount, offer_date, deadline, notes`,
		offer.UserID, offer.JobID, offer.Amount, offer.OfferDate, offer.Deadline, offer.Notes).
		StructScan(&created)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.Offer{}, ErrOutcomeExists
	}
	return created, err
}

// ListOffers returns the user's offers.
func (r *OutcomeRepo) ListOffers(ctx context.Context, userID int) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.SelectContext(ctx, &offers,
		`SELECT id, user_id, job_id, amount, offer_date, deadline, notes FROM offers WHERE user_id=$1 ORDER BY offer_date DESC`, userID)
	return offers, err
}

// DeleteOffer removes an offer owned by the user.
func (r *OutcomeRepo) DeleteOffer(ctx context.Context, offerID, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id=$1 AND user_id=$2`, offerID, userID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// CreateRejection inserts a rejection; at most one per job.
func (r *OutcomeRepo) CreateRejection(ctx context.Context, rejection models.Rejection) (models.Rejection, error) {
	var created models.Rejection
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO rejections (user_id, job_id, rejected_at, reason)
         VALUES ($1, $2, $3, $4)
         RETURNING id, user_id, job_id, rejected_at, reason`,
		rejection.UserID, rejection.JobID, rejection.RejectedAt, rejection.Reason).
		StructScan(&created)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.Rejection{}, ErrOutcomeExists
	}
	return created, err
}

// ListRejections returns the user's rejections.
func (r *OutcomeRepo) ListRejections(ctx context.Context, userID int) ([]models.Rejection, error) {
	var rejections []models.Rejection
	err := r.db.SelectContext(ctx, &rejections,
		`SELECT id, user_id, job_id, rejected_at, reason FROM rejections WHERE user_id=$1 ORDER BY rejected_at DESC`, userID)
	return rejections, err
}

// DeleteRejection removes a rejection owned by the user.
func (r *OutcomeRepo) DeleteRejection(ctx context.Context, rejectionID, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rejections WHERE id=$1 AND user_id=$2`, rejectionID, userID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRejectionNotFound
	}
	return nil
}
