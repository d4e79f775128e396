package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const metaCreated = "created-at"

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store stores objects in an S3 bucket under a key prefix.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := snapshot.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "pages/", 0)
type S3Store struct {
	client  S3API
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3Store creates an S3Store. maxSize of 0 means no limit.
func NewS3Store(client S3API, bucket, prefix string, maxSize int64) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, maxSize: maxSize}
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, obj *Object) error {
	if s.maxSize > 0 && int64(len(obj.Data)) > s.maxSize {
		return ErrTooLarge
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + obj.Key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.ContentType),
		Metadata: map[string]string{
			metaCreated: obj.CreatedAt.UTC().Format(timeFormat),
		},
	})
	if err != nil {
		return fmt.Errorf("snapshot: s3 put %q: %w", obj.Key, err)
	}
	return nil
}

// Get implements Store.
func (s *S3Store) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("snapshot: s3 get %q: %w", key, err)
	}
	defer out.Body.Close()

	var body io.Reader = out.Body
	if s.maxSize > 0 {
		body = io.LimitReader(out.Body, s.maxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("snapshot: s3 read %q: %w", key, err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}

	obj := &Object{Key: key, Data: data, ContentType: aws.ToString(out.ContentType)}
	if created, ok := out.Metadata[metaCreated]; ok {
		obj.CreatedAt, _ = parseTime(created)
	}
	return obj, nil
}
