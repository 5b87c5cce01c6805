/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/casurance/intake/internal/system/config"
)

// Uploader stores file bodies under a key.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Ping(ctx context.Context) error
}

// s3API is the part of the S3 client used by the uploader.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Uploader stores attachments in an S3 bucket.
type S3Uploader struct {
	client s3API
	bucket string
}

// NewS3Uploader creates an uploader for the configured bucket.
// A custom endpoint switches to path style addressing, as MinIO and LocalStack expect.
func NewS3Uploader(ctx context.Context, cfg config.AttachmentConfig) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("attachment bucket is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Uploader{client: client, bucket: cfg.Bucket}, nil
}

// NewUploaderFromConfig returns the configured uploader.
// ErrUploadsDisabled is returned when attachments are switched off.
func NewUploaderFromConfig(ctx context.Context) (Uploader, error) {
	cfg := config.GetRuntime().Config.Attachments
	if !cfg.Enabled {
		return nil, ErrUploadsDisabled
	}
	u, err := NewS3Uploader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Upload puts the body into the bucket under key.
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put failed: %w", err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (u *S3Uploader) Ping(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(u.bucket)})
	if err != nil {
		return fmt.Errorf("s3 head bucket failed: %w", err)
	}
	return nil
}
