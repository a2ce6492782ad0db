package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectClient is the subset of S3 operations ObjectStore needs.
type objectClient interface {
	get(ctx context.Context, bucket, key string) ([]byte, error)
	put(ctx context.Context, bucket, key string, data []byte) error
}

// ObjectStore keeps the document as a JSON object in S3 compatible storage.
type ObjectStore struct {
	client objectClient
	bucket string
	key    string
}

var _ interfaces.RemoteStore = (*ObjectStore)(nil)

// ObjectConfig holds the connection settings for NewObjectStore.
type ObjectConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Secure    bool
	// Key overrides the default documents/{handle}.json object name.
	Key string
}

// NewObjectStore connects to an S3 compatible endpoint.
func NewObjectStore(cfg ObjectConfig, handle string) (*ObjectStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("object store: bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}
	return newObjectStore(minioClient{client: client}, cfg.Bucket, objectKey(cfg.Key, handle)), nil
}

func newObjectStore(client objectClient, bucket, key string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, key: key}
}

// Key returns the object name the document is stored under.
func (s *ObjectStore) Key() string {
	return s.key
}

func (s *ObjectStore) Fetch(ctx context.Context) (map[string]any, error) {
	raw, err := s.client.get(ctx, s.bucket, s.key)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("object fetch: decode: %w", err)
	}
	if payload == nil {
		return nil, interfaces.ErrDocumentNotFound
	}
	return payload, nil
}

func (s *ObjectStore) Replace(ctx context.Context, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("object replace: encode: %w", err)
	}
	return s.client.put(ctx, s.bucket, s.key, raw)
}

func objectKey(override, handle string) string {
	if key := strings.TrimSpace(override); key != "" {
		return key
	}
	return "documents/" + handle + ".json"
}

type minioClient struct {
	client *minio.Client
}

func (c minioClient) get(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapObjectError(err)
	}
	defer obj.Close()
	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapObjectError(err)
	}
	return raw, nil
}

func (c minioClient) put(ctx context.Context, bucket, key string, data []byte) error {
	_, err := c.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("object replace: %w", err)
	}
	return nil
}

func mapObjectError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return interfaces.ErrDocumentNotFound
	}
	return fmt.Errorf("object fetch: %w", err)
}
