// Package akave is a thin client for the Akave object storage HTTP API.
// Uploads land in a bucket and come back as content-addressed IPFS URIs.
package akave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Client uploads files to a single bucket of an Akave deployment.
type Client struct {
	baseURL string
	bucket  string
	http    *http.Client
}

// NewClient creates a client for the given API base URL and bucket.
func NewClient(baseURL, bucket string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	IpfsURI string `json:"ipfsUri"`
}

// UploadFile posts the payload as the multipart "file" field and returns
// the content-addressed URI from the response.
func (c *Client) UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	url := fmt.Sprintf("%s/buckets/%s/files", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload to akave: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("akave returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode akave response: %w", err)
	}
	if parsed.IpfsURI == "" {
		return "", fmt.Errorf("akave response missing ipfsUri")
	}
	return parsed.IpfsURI, nil
}

// UploadJSON marshals the object and uploads it as a JSON file.
func (c *Client) UploadJSON(ctx context.Context, filename string, obj interface{}) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", filename, err)
	}
	return c.UploadFile(ctx, filename, "application/json", data)
}
