package admin

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"warungku/backend"
	"warungku/globals"
	"warungku/kv"
	"warungku/session"
)

func menuFormRequest(t *testing.T, imageType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Nasi Goreng")
	mw.WriteField("description", "Pedas")
	mw.WriteField("category", "Makanan")
	mw.WriteField("price", "15000")

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="evil.exe"`)
	header.Set("Content-Type", imageType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write([]byte("not really an image"))
	mw.Close()

	ctx := context.Background()
	s := session.NewForTest(kv.NewMemory(), "sid-admin", "admin", "ADMIN")
	if err := s.SetCredential(ctx, "admin-tok"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(context.WithValue(req.Context(), globals.SessionKey, s))
}

func TestCreateMenuRejectsUnsupportedImageType(t *testing.T) {
	var upstreamCalls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	}))
	defer ts.Close()
	h := &Handlers{API: backend.New(ts.URL), UploadDir: t.TempDir()}

	rec := httptest.NewRecorder()
	h.CreateMenu(rec, menuFormRequest(t, "application/x-msdownload"), nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Invalid file type")) {
		t.Fatalf("body = %s, want the file-type message", rec.Body)
	}
	if upstreamCalls != 0 {
		t.Fatalf("rejected upload reached the backend %d times", upstreamCalls)
	}
}
