package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// SignedUpload is everything a client needs to PUT a file straight into the
// bucket.
type SignedUpload struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ObjectKey string            `json:"object_key"`
	ExpiresAt time.Time         `json:"expires_at"`
}

type serviceAccountJSON struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Client signs bucket URLs from a service-account key supplied via
// GCS_CREDENTIALS_JSON. Uploads and downloads go directly between the
// caller and the bucket, the backend only hands out URLs.
type Client struct {
	bucket     string
	accessID   string
	privateKey []byte
}

func NewClientFromEnv() (*Client, error) {
	bucket := strings.TrimSpace(os.Getenv("GCS_BUCKET"))
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET is required")
	}

	credJSON := strings.TrimSpace(os.Getenv("GCS_CREDENTIALS_JSON"))
	if credJSON == "" {
		return nil, errors.New("GCS_CREDENTIALS_JSON is required")
	}
	var key serviceAccountJSON
	if err := json.Unmarshal([]byte(credJSON), &key); err != nil {
		return nil, fmt.Errorf("invalid GCS_CREDENTIALS_JSON: %w", err)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, errors.New("GCS_CREDENTIALS_JSON is missing client_email or private_key")
	}

	return &Client{
		bucket:     bucket,
		accessID:   key.ClientEmail,
		privateKey: []byte(key.PrivateKey),
	}, nil
}

// ObjectKey builds the bucket layout: projects/<id>/<entity>/<uuid><ext>.
func ObjectKey(projectID uuid.UUID, entity, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("projects/%s/%s/%s%s", projectID, entity, uuid.NewString(), ext)
}

func (c *Client) SignUpload(objectKey, contentType string, expires time.Duration) (*SignedUpload, error) {
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        time.Now().Add(expires),
		ContentType:    contentType,
		GoogleAccessID: c.accessID,
		PrivateKey:     c.privateKey,
	}

	signedURL, err := storage.SignedURL(c.bucket, objectKey, opts)
	if err != nil {
		return nil, err
	}

	return &SignedUpload{
		UploadURL: signedURL,
		Method:    opts.Method,
		Headers:   map[string]string{"Content-Type": contentType},
		ObjectKey: objectKey,
		ExpiresAt: opts.Expires,
	}, nil
}

// SignDownload returns a temporary GET URL for an object.
func (c *Client) SignDownload(objectKey string, expires time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "GET",
		Expires:        time.Now().Add(expires),
		GoogleAccessID: c.accessID,
		PrivateKey:     c.privateKey,
	}
	return storage.SignedURL(c.bucket, objectKey, opts)
}
