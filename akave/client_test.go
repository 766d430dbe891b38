package akave

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadFile(t *testing.T) {
	var gotPath, gotFilename, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("Missing multipart file field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(file)

		json.NewEncoder(w).Encode(map[string]string{"ipfsUri": "ipfs://QmStored123"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "myBucket3")
	uri, err := client.UploadFile(context.Background(), "rune-agent.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}

	if uri != "ipfs://QmStored123" {
		t.Errorf("Expected stored URI, got %s", uri)
	}
	if gotPath != "/buckets/myBucket3/files" {
		t.Errorf("Unexpected upload path: %s", gotPath)
	}
	if gotFilename != "rune-agent.png" {
		t.Errorf("Unexpected filename: %s", gotFilename)
	}
	if gotContentType != "image/png" {
		t.Errorf("Unexpected content type: %s", gotContentType)
	}
	if string(gotBody) != "png-bytes" {
		t.Errorf("Body not preserved: %q", gotBody)
	}
}

func TestUploadFileServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket quota exceeded", http.StatusInsufficientStorage)
	}))
	defer server.Close()

	client := NewClient(server.URL, "myBucket3")
	_, err := client.UploadFile(context.Background(), "x.png", "image/png", []byte("data"))
	if err == nil {
		t.Fatal("Expected error on non-2xx response")
	}
	if !strings.Contains(err.Error(), "quota") {
		t.Errorf("Expected response body in error, got: %v", err)
	}
}

func TestUploadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("Missing multipart file field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		var doc map[string]interface{}
		if err := json.NewDecoder(file).Decode(&doc); err != nil {
			t.Errorf("Payload is not JSON: %v", err)
		}
		if doc["name"] != "Rune Agent #1" {
			t.Errorf("Unexpected payload: %+v", doc)
		}

		json.NewEncoder(w).Encode(map[string]string{"ipfsUri": "ipfs://QmMeta456"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "myBucket3")
	uri, err := client.UploadJSON(context.Background(), "metadata.json", map[string]string{"name": "Rune Agent #1"})
	if err != nil {
		t.Fatalf("UploadJSON failed: %v", err)
	}
	if uri != "ipfs://QmMeta456" {
		t.Errorf("Expected stored URI, got %s", uri)
	}
}

func TestUploadFileUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "myBucket3")
	if _, err := client.UploadFile(context.Background(), "x.png", "image/png", []byte("data")); err == nil {
		t.Fatal("Expected connection error")
	}
}
