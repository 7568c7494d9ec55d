package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	cfg "github.com/blinkdeveloper33/blinkscore-engine/internal/config"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// S3StatementArchive implements domain.StatementArchiver using AWS S3. It
// stores the exact transaction/balance payload a scoring run was invoked
// with, keyed by workspace/user/timestamp, so a disputed score can be
// replayed against the inputs that produced it.
type S3StatementArchive struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// NewS3StatementArchive creates a new S3-backed statement archive.
func NewS3StatementArchive(ctx context.Context, s3cfg cfg.S3Config) (*S3StatementArchive, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(s3cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	archive := &S3StatementArchive{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    s3cfg.BucketName,
	}

	if err := archive.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return archive, nil
}

// ensureBucket creates the bucket if it doesn't exist. The bucket stays
// private; there is no public-read use case for raw ledger payloads.
func (a *S3StatementArchive) ensureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket (may be permission denied): %w", err)
	}

	if _, err := a.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(a.bucket),
	}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Archive uploads the payload under a key derived from the workspace, user,
// and scoring timestamp, and returns the object path.
func (a *S3StatementArchive) Archive(ctx context.Context, workspaceID int32, userID string, scoredAt time.Time, payload []byte) (string, error) {
	objectPath := fmt.Sprintf("workspaces/%d/users/%s/%s.json", workspaceID, userID, scoredAt.UTC().Format(time.RFC3339))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectPath),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload statement archive: %w", err)
	}
	return objectPath, nil
}

// PresignedURL generates a presigned GET URL for temporary access to an
// archived payload, e.g. for a dispute-resolution reviewer.
func (a *S3StatementArchive) PresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	presignedReq, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectPath),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presignedReq.URL, nil
}

var _ domain.StatementArchiver = (*S3StatementArchive)(nil)
