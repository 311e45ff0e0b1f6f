package gcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

// AudioStager stages voice recordings that are too large to send inline to speech recognition.
type AudioStager interface {
	Stage(ctx context.Context, key string, audio []byte, contentType string) (gsURI string, err error)
	Remove(ctx context.Context, key string) error
	Close() error
}

type audioStager struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
	prefix string
}

func NewAudioStager(ctx context.Context, log *logger.Logger, bucket, prefix string) (AudioStager, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("audio bucket name required")
	}
	client, err := storage.NewClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &audioStager{
		log:    log.With("service", "AudioStager", "bucket", bucket),
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *audioStager) objectName(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func (s *audioStager) Stage(ctx context.Context, key string, audio []byte, contentType string) (string, error) {
	name := s.objectName(key)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(audio)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", name, err)
	}
	s.log.Debug("staged audio", "object", name, "bytes", len(audio))
	return fmt.Sprintf("gs://%s/%s", s.bucket, name), nil
}

func (s *audioStager) Remove(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(s.objectName(key)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

func (s *audioStager) Close() error {
	return s.client.Close()
}
