package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/quorumkey/wallet-custody-backend/interfaces"
)

// S3Store implements a document store using Amazon S3 or compatible
// services. Custody documents are private objects; unlike a public content
// mirror, nothing this store writes is world-readable.
type S3Store struct {
	client      *s3.S3
	bucketName  string
	prefix      string
	log         *slog.Logger
	locationURI string
}

// NewS3Store creates a new S3 document store. Credentials are required:
// custody shares must never live in a bucket the service cannot
// authenticate to. When accessKey and secretKey are empty the ambient AWS
// credential chain is used.
func NewS3Store(bucketName, prefix, region, endpoint, accessKey, secretKey string, log *slog.Logger) (*S3Store, error) {
	uri := fmt.Sprintf("s3://%s/%s?region=%s", bucketName, prefix, region)
	if endpoint != "" {
		uri += fmt.Sprintf("&endpoint=%s", endpoint)
	}

	cfg := aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		// Compatible services (MinIO and friends) generally need path style.
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if accessKey != "" && secretKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Store{
		client:      s3.New(sess),
		bucketName:  bucketName,
		prefix:      strings.TrimSuffix(prefix, "/"),
		log:         log,
		locationURI: uri,
	}, nil
}

// Get retrieves a document from S3 by key and kind.
// Returns ErrDocumentNotFound if the object doesn't exist.
func (s *S3Store) Get(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind) ([]byte, error) {
	start := time.Now()
	objectKey := s.getObjectKey(key, kind)

	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "404") {
			s.log.Debug("Document not found in S3",
				slog.String("bucket", s.bucketName),
				slog.String("object_key", objectKey),
				slog.Duration("duration", time.Since(start)))
			return nil, interfaces.ErrDocumentNotFound
		}

		s.log.Error("Failed to get object from S3",
			slog.String("bucket", s.bucketName),
			slog.String("object_key", objectKey),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	s.log.Debug("Fetched document from S3",
		slog.String("bucket", s.bucketName),
		slog.String("object_key", objectKey),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Put stores a document in S3 under its key, replacing any previous
// version. Objects are written with private ACL.
func (s *S3Store) Put(ctx context.Context, key interfaces.DocumentKey, kind interfaces.DocumentKind, data []byte) error {
	objectKey := s.getObjectKey(key, kind)

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(data),
		ACL:    aws.String("private"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object to S3: %w", err)
	}

	s.log.Debug("Stored document in S3",
		slog.String("bucket", s.bucketName),
		slog.String("object_key", objectKey))

	return nil
}

// Available checks if the S3 backend is accessible by heading the bucket.
func (s *S3Store) Available(ctx context.Context) bool {
	start := time.Now()

	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		s.log.Warn("S3 store unavailable",
			slog.String("bucket", s.bucketName),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return false
	}

	return true
}

// Name returns a unique identifier for this document store.
func (s *S3Store) Name() string {
	return fmt.Sprintf("s3-%s", s.bucketName)
}

// LocationURI returns the URI that identifies this document store.
func (s *S3Store) LocationURI() string {
	return s.locationURI
}

// getObjectKey generates an S3 object key based on document key and kind.
func (s *S3Store) getObjectKey(key interfaces.DocumentKey, kind interfaces.DocumentKind) string {
	objectKey := path.Join(kind.String(), key.String())
	if s.prefix == "" {
		return objectKey
	}
	return path.Join(s.prefix, objectKey)
}
