// Package s3 implements the object-store collaborator against the
// deployed MinIO service using the AWS SDK. The client is constructed
// only after the object-store step has discovered the generated
// credentials and the cluster-internal endpoint.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// Client wraps the S3 API for the in-cluster object store.
type Client struct {
	s3 *s3.Client
}

// NewClient creates a client for the given endpoint and credential
// pair. The endpoint may be a bare host:port service address; it is
// normalized to the scheme-qualified URL the SDK requires.
func NewClient(endpoint, accessKey, secretKey string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("us-east-1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(normalizeEndpoint(endpoint))
		o.UsePathStyle = true // MinIO serves buckets path-style
	})

	return &Client{s3: client}, nil
}

// normalizeEndpoint turns a discovered host:port address into a URL.
// The in-cluster object-store service speaks plain HTTP.
func normalizeEndpoint(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "http://" + endpoint
}

// BucketPresence reports whether a bucket exists. A connectivity or
// auth failure yields PresenceUnknown together with the error, so a
// transient outage can never be misread as "bucket already exists".
func (c *Client) BucketPresence(ctx context.Context, name string) (provisioning.Presence, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err == nil {
		return provisioning.PresenceExists, nil
	}
	if isNotFoundError(err) {
		return provisioning.PresenceAbsent, nil
	}
	return provisioning.PresenceUnknown, &provisioning.ExternalCallError{
		Collaborator: "object-store",
		Op:           fmt.Sprintf("head bucket %s", name),
		Err:          err,
	}
}

// CreateBucket creates a bucket. A bucket that already exists under our
// credentials is a no-op.
func (c *Client) CreateBucket(ctx context.Context, name string) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", name, err)
	}
	return nil
}

// PutObject uploads an object to a bucket.
func (c *Client) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucket, err)
	}
	return nil
}

// ListObjects lists object keys in a bucket with an optional prefix.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	result, err := c.s3.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects in bucket %s: %w", bucket, err)
	}

	var keys []string
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

// isBucketAlreadyOwnedByYou checks whether the error means the bucket
// exists under our credentials.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}
	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	// S3-compatible services do not always return the exact SDK types.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}
	return false
}

// isNotFoundError checks whether the error is a definite not-found, as
// opposed to a transport or auth failure.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}
	return false
}
