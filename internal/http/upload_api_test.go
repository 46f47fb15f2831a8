package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadReturnsTopLevelURLs(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)

	body, contentType := multipartUpload(t, "files", "tank.png", []byte("png-bytes"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(asAdmin(req, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// Clients read urls at the top level of the body, not under data.
	var out map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if _, found := out["data"]; found {
		t.Fatalf("urls must not be nested under data: %v", out)
	}
	var urls []string
	if err := json.Unmarshal(out["urls"], &urls); err != nil {
		t.Fatalf("missing top-level urls: %v", out)
	}
	if len(urls) != 1 || !strings.HasPrefix(urls[0], "/uploads/") || !strings.HasSuffix(urls[0], ".png") {
		t.Fatalf("unexpected urls %v", urls)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)

	body, contentType := multipartUpload(t, "files", "malware.exe", []byte("nope"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(asAdmin(req, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
