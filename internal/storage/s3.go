package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Store talks to an S3-compatible object store (AWS S3, MinIO, Supabase
// storage behind the S3 protocol).
type S3Store struct {
	client   s3iface.S3API
	endpoint string
}

// NewS3Store builds an S3Store from the bucket settings in cfg.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.BucketRegion),
		Endpoint:         aws.String(cfg.BucketEndpoint),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.BucketAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.BucketAccessKey, cfg.BucketSecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store session: %w", err)
	}

	return &S3Store{
		client:   s3.New(sess),
		endpoint: strings.TrimRight(cfg.BucketEndpoint, "/"),
	}, nil
}

// Put uploads data under bucket/key. When overwrite is false an existing key
// is a conflict. The existence check and the upload are two calls, so two
// writers racing on the same key within that window can still both succeed;
// key generation upstream makes that window practically unreachable for
// user-paced uploads.
func (s *S3Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error {
	if !overwrite {
		_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err == nil {
			return models.NewConflictError(fmt.Sprintf("object %q already exists in bucket %q", key, bucket))
		}
		if !isNotFound(err) {
			return models.NewStoreError(err)
		}
	}

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return models.NewStoreError(err)
	}

	return nil
}

// PublicURL returns the path-style URL for an uploaded object.
func (s *S3Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, bucket, key)
}

func isNotFound(err error) bool {
	if reqErr, ok := err.(awserr.RequestFailure); ok {
		return reqErr.StatusCode() == 404
	}
	if aerr, ok := err.(awserr.Error); ok {
		return aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound"
	}
	return false
}
