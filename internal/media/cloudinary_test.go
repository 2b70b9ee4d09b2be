package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testCredentials() Credentials {
	return Credentials{CloudName: "demo", APIKey: "1234", APISecret: "shh"}
}

func TestNewCloudinaryRequiresCredentials(t *testing.T) {
	_, err := NewCloudinary(Credentials{CloudName: "demo"}, "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCloudinaryUploadReturnsSecureURL(t *testing.T) {
	var gotFolder, gotPath string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFolder = r.FormValue("folder")
		if file, _, err := r.FormFile("file"); err == nil {
			gotBody, _ = io.ReadAll(file)
			file.Close()
		} else {
			gotBody = []byte(r.FormValue("file"))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"public_id":"artisans/abc","secure_url":"https://res.example/artisans/abc.png"}`)
	}))
	defer server.Close()

	uploader, err := NewCloudinary(testCredentials(), "", WithUploadPrefix(server.URL))
	if err != nil {
		t.Fatalf("NewCloudinary: %v", err)
	}

	url, err := uploader.Upload(context.Background(), []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://res.example/artisans/abc.png" {
		t.Errorf("url = %q", url)
	}
	if gotFolder != DefaultFolder {
		t.Errorf("folder = %q, want %q", gotFolder, DefaultFolder)
	}
	if !strings.Contains(gotPath, "/demo/") {
		t.Errorf("upload path %q does not name the cloud", gotPath)
	}
	if string(gotBody) != "png-bytes" {
		t.Errorf("uploaded body = %q", gotBody)
	}
}

func TestCloudinaryUploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Invalid Signature"}}`)
	}))
	defer server.Close()

	uploader, err := NewCloudinary(testCredentials(), "avatars", WithUploadPrefix(server.URL))
	if err != nil {
		t.Fatalf("NewCloudinary: %v", err)
	}

	_, err = uploader.Upload(context.Background(), []byte("png-bytes"))
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("err = %v, want *UploadError", err)
	}
}

func TestDisabledUploader(t *testing.T) {
	_, err := Disabled{}.Upload(context.Background(), []byte("x"))
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("err = %v, want *UploadError", err)
	}
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want to wrap ErrNotConfigured", err)
	}
}
