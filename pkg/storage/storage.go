// Package storage uploads, lists and presigns objects in the configured S3
// bucket. Every operation is one S3 call.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/awsenv"
)

const (
	// TimestampFormat is the layout of the key prefix and the uploaded_at field.
	TimestampFormat = "20060102_150405"

	// LastModifiedFormat renders S3 timestamps as ISO-8601 with a numeric offset.
	LastModifiedFormat = "2006-01-02T15:04:05-07:00"

	// DefaultPresignTTL is used when Presign receives a zero ttl.
	DefaultPresignTTL = time.Hour

	// MaxPresignTTL is the longest lifetime SigV4 allows.
	MaxPresignTTL = 7 * 24 * time.Hour
)

// ErrBucketNotConfigured is returned by every operation when no bucket is set.
var ErrBucketNotConfigured = errors.New("S3_BUCKET_NAME not configured in environment variables")

// ObjectAPI is the subset of *s3.Client the store calls.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// PresignAPI is the subset of *s3.PresignClient the store calls.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Config locates uploads.
type Config struct {
	Bucket string
	Folder string // Key prefix for uploads and the default listing prefix.
	Region string // Used to build public object URLs.
}

// UploadResult describes a stored object.
type UploadResult struct {
	Bucket     string `json:"bucket"`
	Key        string `json:"key"`
	URL        string `json:"url"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

// FileInfo describes a listed object.
type FileInfo struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
	Filename     string `json:"filename"`
}

// Store performs the S3 operations.
type Store struct {
	api     ObjectAPI
	presign PresignAPI
	cfg     Config

	// Now supplies upload timestamps; defaults to time.Now.
	Now func() time.Time
}

// New creates a Store. presign may be nil, in which case Presign fails.
func New(api ObjectAPI, presign PresignAPI, cfg Config) *Store {
	return &Store{api: api, presign: presign, cfg: cfg, Now: time.Now}
}

// NewFromConfig creates a Store backed by an s3.Client built from awsCfg.
func NewFromConfig(awsCfg aws.Config, cfg Config) *Store {
	client := s3.NewFromConfig(awsCfg)
	if cfg.Region == "" {
		cfg.Region = awsCfg.Region
	}

	return New(client, s3.NewPresignClient(client), cfg)
}

// Key builds the storage key {folder}/{timestamp}_{filename}. An empty
// folder yields {timestamp}_{filename}.
func Key(folder, timestamp, filename string) string {
	name := timestamp + "_" + filename

	folder = strings.TrimSuffix(folder, "/")
	if folder == "" {
		return name
	}

	return folder + "/" + name
}

// ObjectURL returns the virtual-hosted-style URL of key.
func ObjectURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// Upload writes content under a timestamp-prefixed key.
func (s *Store) Upload(ctx context.Context, content []byte, filename, contentType string) (UploadResult, error) {
	if s.cfg.Bucket == "" {
		return UploadResult{}, notConfigured()
	}

	timestamp := s.now().UTC().Format(TimestampFormat)
	key := Key(s.cfg.Folder, timestamp, filename)

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original_filename": filename,
			"upload_timestamp":  timestamp,
		},
	})
	if err != nil {
		return UploadResult{}, awsenv.Classify(err, "S3 upload error", "Error uploading file to S3: ")
	}

	return UploadResult{
		Bucket:     s.cfg.Bucket,
		Key:        key,
		URL:        ObjectURL(s.cfg.Bucket, s.cfg.Region, key),
		Filename:   filename,
		UploadedAt: timestamp,
	}, nil
}

// List returns the first page of objects under prefix, or under the
// configured folder when prefix is empty. The result is never nil.
func (s *Store) List(ctx context.Context, prefix string) ([]FileInfo, error) {
	if s.cfg.Bucket == "" {
		return nil, notConfigured()
	}

	if prefix == "" {
		prefix = s.cfg.Folder
	}

	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, awsenv.Classify(err, "Error listing S3 files", "Error listing S3 files: ")
	}

	files := make([]FileInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		files = append(files, FileInfo{
			Key:          key,
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified).UTC().Format(LastModifiedFormat),
			Filename:     path.Base(key),
		})
	}

	return files, nil
}

// Presign returns a GET URL for key valid for ttl (DefaultPresignTTL when zero).
func (s *Store) Presign(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.cfg.Bucket == "" {
		return "", notConfigured()
	}
	if key == "" {
		return "", apperr.New(apperr.InvalidInput, "key is required")
	}
	if ttl == 0 {
		ttl = DefaultPresignTTL
	}
	if ttl < 0 || ttl > MaxPresignTTL {
		return "", apperr.New(apperr.InvalidInput, "expiration must be between 1s and %s", MaxPresignTTL)
	}
	if s.presign == nil {
		return "", apperr.New(apperr.Internal, "storage: presigning is not available")
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", awsenv.Classify(err, "Error generating presigned URL", "Error generating presigned URL: ")
	}

	return req.URL, nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func notConfigured() *apperr.Error {
	return &apperr.Error{Kind: apperr.Internal, Message: ErrBucketNotConfigured.Error(), Err: ErrBucketNotConfigured}
}
