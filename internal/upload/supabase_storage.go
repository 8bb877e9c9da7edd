package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sabores/internal/config"
)

const objectPrefix = "products/"

// SupabaseStorage talks to the Supabase Storage REST API with the service
// role key.
type SupabaseStorage struct {
	baseURL string
	key     string
	bucket  string
	client  *http.Client
}

type supabaseError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

func NewSupabaseStorage(cfg config.StorageConfig) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.ServiceRoleKey,
		bucket:  cfg.Bucket,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *SupabaseStorage) Source() string {
	return SourceSupabase
}

func (s *SupabaseStorage) Put(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error) {
	path := objectPrefix + name
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	if err := s.do(req); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", path, err)
	}

	return &StoredObject{URL: s.PublicURL(path), Path: path}, nil
}

func (s *SupabaseStorage) Remove(ctx context.Context, path string) error {
	body, err := json.Marshal(removeRequest{Prefixes: []string{path}})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, s.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	if err := s.do(req); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (s *SupabaseStorage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

func (s *SupabaseStorage) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
}

func (s *SupabaseStorage) do(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr supabaseError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("storage API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("storage API error (%d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
