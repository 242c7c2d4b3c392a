package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignTTL = 15 * time.Minute

// UploadTarget is a pre-signed upload destination returned to the client,
// which uploads directly to object storage.
type UploadTarget struct {
	URL       string `json:"url"`
	Method    string `json:"method"`
	ObjectKey string `json:"object_key"`
}

// Uploader issues pre-signed S3 upload URLs.
type Uploader interface {
	PresignUpload(ctx context.Context, userID int, fileName, contentType string) (UploadTarget, error)
}

// S3Uploader backs Uploader with an S3 bucket.
type S3Uploader struct {
	presigner *s3.PresignClient
	bucket    string
}

// NewS3Uploader builds an S3Uploader, or nil when no bucket is configured.
func NewS3Uploader(ctx context.Context, bucket, region string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Uploader{presigner: s3.NewPresignClient(client), bucket: bucket}, nil
}

// PresignUpload returns a pre-signed PUT URL for a fresh object key under
// the user's prefix.
func (u *S3Uploader) PresignUpload(ctx context.Context, userID int, fileName, contentType string) (UploadTarget, error) {
	key := fmt.Sprintf("documents/%d/%s-%s", userID, uuid.NewString(), fileName)
	req, err := u.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return UploadTarget{}, err
	}
	return UploadTarget{URL: req.URL, Method: req.Method, ObjectKey: key}, nil
}
