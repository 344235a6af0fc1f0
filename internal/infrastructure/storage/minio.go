package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tezhire/ultravox-integration/pkg/config"
)

// artifactURLExpiry bounds how long a generated transcript link stays valid
const artifactURLExpiry = 7 * 24 * time.Hour

// TranscriptStore keeps full interview transcripts as text objects so the
// results endpoint can hand out a durable URL instead of inlining megabytes
// of text.
type TranscriptStore struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL when MinIO sits behind a reverse proxy
}

// NewTranscriptStore creates a MinIO-backed transcript store
func NewTranscriptStore(cfg *config.StorageConfig) (*TranscriptStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &TranscriptStore{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx := context.Background()
	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

// ensureBucket ensures the transcript bucket exists
func (s *TranscriptStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// SaveTranscript uploads the full transcript text for a session and returns
// a URL the results payload can expose. Objects are keyed by session id so a
// re-run of results generation overwrites rather than duplicates.
func (s *TranscriptStore) SaveTranscript(ctx context.Context, sessionID, content string) (string, error) {
	objectName := fmt.Sprintf("transcripts/%s.txt", sessionID)

	reader := bytes.NewReader([]byte(content))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript: %w", err)
	}

	return s.objectURL(ctx, objectName)
}

// objectURL generates a presigned URL, rewritten onto the public endpoint
// when one is configured (MinIO behind Nginx)
func (s *TranscriptStore) objectURL(ctx context.Context, objectName string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, artifactURLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.publicURL != "" {
		urlStr := url.String()
		// Format: scheme://endpoint/bucket/object?query
		bucketPos := len(url.Scheme) + 3 + len(url.Host)
		if bucketPos < len(urlStr) {
			return s.publicURL + urlStr[bucketPos:], nil
		}
	}

	return url.String(), nil
}
