package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository abstracts uploaded document metadata persistence.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc models.Document) (models.Document, error)
	ListDocuments(ctx context.Context, userID int) ([]models.Document, error)
	DeleteDocument(ctx context.Context, documentID, userID int) error
}

// DocumentRepo is a sqlx implementation of DocumentRepository.
type DocumentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo constructs a DocumentRepo.
func NewDocumentRepo(db *sqlx.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// CreateDocument records metadata for an uploaded object.
func (r *DocumentRepo) CreateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	var created models.Document
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO documents (user_id, file_name, object_key, content_type)
         VALUES ($1, $2, $3, $4)
         RETURNING id, user_id, file_name, object_key, content_type, created_at`,
		doc.UserID, doc.FileName, doc.ObjectKey, doc.ContentType).
		StructScan(&created)
	return created, err
}

// ListDocuments returns the user's documents, newest first.
func (r *DocumentRepo) ListDocuments(ctx context.Context, userID int) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT id, user_id, file_name, object_key, content_type, created_at FROM documents WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	return docs, err
}

// DeleteDocument removes a document record owned by the user.
func (r *DocumentRepo) DeleteDocument(ctx context.Context, documentID, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id=$1 AND user_id=$2`, documentID, userID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
