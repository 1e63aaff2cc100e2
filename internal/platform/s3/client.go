// Package s3 provides the artifact store used to archive cluster PKI
// material (CSR, CA certificate, signed cluster certificate) for audit.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Client wraps the S3 client for artifact storage.
type Client struct {
	s3     *s3.Client
	bucket string
	prefix string
}

// NewClient creates an artifact store client writing under bucket/prefix.
func NewClient(awsCfg aws.Config, bucket, prefix string) *Client {
	return &Client{
		s3:     s3.NewFromConfig(awsCfg),
		bucket: bucket,
		prefix: prefix,
	}
}

// EnsureBucket creates the artifact bucket if it does not already exist.
// A bucket already owned by us is not an error.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// PutArtifact uploads one named artifact under the configured prefix.
func (c *Client) PutArtifact(ctx context.Context, name string, data []byte) error {
	key := path.Join(c.prefix, name)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to put artifact %s in bucket %s: %w", key, c.bucket, err)
	}
	return nil
}

// GetArtifact downloads one named artifact from under the configured prefix.
func (c *Client) GetArtifact(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(c.prefix, name)
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact %s from bucket %s: %w", key, c.bucket, err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read artifact body: %w", err)
	}

	return buf.Bytes(), nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket
// exists and is owned by us.
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

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}
