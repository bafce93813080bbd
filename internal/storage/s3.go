package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	apperrors "foodjournal/internal/errors"
)

// ObjectStore abstracts the remote bucket so services and the upload pipeline
// can be tested without AWS.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	ObjectURL(key string) string
}

// S3Store stores objects in a single S3 bucket with public-read access.
type S3Store struct {
	client      *s3.Client
	bucket      string
	urlTemplate string
}

// Ensure S3Store implements ObjectStore
var _ ObjectStore = (*S3Store)(nil)

// NewS3Store builds an S3-backed store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region, urlTemplate string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Store{
		client:      s3.NewFromConfig(cfg),
		bucket:      bucket,
		urlTemplate: urlTemplate,
	}, nil
}

// Put uploads one object. Errors are classified into the journal's upload
// taxonomy: client faults from the service become ErrUploadParam, everything
// else ErrUploadTransport.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return classifyPutError(err)
	}
	return nil
}

// ObjectURL derives the public URL for a stored object.
func (s *S3Store) ObjectURL(key string) string {
	return fmt.Sprintf(s.urlTemplate, s.bucket, key)
}

func classifyPutError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultClient {
		return fmt.Errorf("%w: %s", apperrors.ErrUploadParam, apiErr.ErrorCode())
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUploadTransport, err)
}
