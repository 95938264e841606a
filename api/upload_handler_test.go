package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// upload serves the request in-process so an early 413 cannot race the
// client still writing the body.
func (e *testEnv) upload(t *testing.T, filename string, data []byte, token string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return e.serve(t, &body, writer.FormDataContentType(), token)
}

func (e *testEnv) serve(t *testing.T, body *bytes.Buffer, contentType, token string) *http.Response {
	t.Helper()

	csrfToken := e.csrfToken(t)
	serverURL, err := url.Parse(e.server.URL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, e.server.URL+"/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(csrfHeader, csrfToken)
	for _, cookie := range e.client.Jar.Cookies(serverURL) {
		req.AddCookie(cookie)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.Config.Handler.ServeHTTP(rec, req)
	return rec.Result()
}

func imageOfSize(n int) []byte {
	return append(append([]byte{}, pngHeader...), make([]byte, n)...)
}

func TestUpload_StoresAndServesImage(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "logo.png", imageOfSize(4*1024*1024), env.adminToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	uploaded := decodeBody[uploadResponse](t, resp)
	require.True(t, strings.HasPrefix(uploaded.URL, "/uploads/"))
	require.True(t, strings.HasSuffix(uploaded.URL, ".png"))

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(uploaded.URL), entries[0].Name())

	served, err := env.client.Get(env.server.URL + uploaded.URL)
	require.NoError(t, err)
	defer served.Body.Close()
	assert.Equal(t, http.StatusOK, served.StatusCode)
	assert.Equal(t, "image/png", served.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", served.Header.Get("X-Content-Type-Options"))
	assert.Contains(t, served.Header.Get("Content-Security-Policy"), "sandbox")
	prefix := make([]byte, len(pngHeader))
	_, err = io.ReadFull(served.Body, prefix)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, prefix)
}

func TestUpload_HTMLNameServedAsImage(t *testing.T) {
	env := newTestEnv(t)

	body := append(append([]byte{}, pngHeader...), []byte("<script>alert(document.cookie)</script>")...)
	resp := env.upload(t, "evil.html", body, env.adminToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	uploaded := decodeBody[uploadResponse](t, resp)
	require.True(t, strings.HasSuffix(uploaded.URL, ".png"), uploaded.URL)

	served, err := env.client.Get(env.server.URL + uploaded.URL)
	require.NoError(t, err)
	defer served.Body.Close()
	assert.Equal(t, http.StatusOK, served.StatusCode)
	assert.Equal(t, "image/png", served.Header.Get("Content-Type"))
}

func TestUpload_NoDirectoryListing(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "logo.png", imageOfSize(1024), env.adminToken(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listing, err := env.client.Get(env.server.URL + "/uploads/")
	require.NoError(t, err)
	defer listing.Body.Close()
	assert.Equal(t, http.StatusNotFound, listing.StatusCode)
}

func TestUpload_RejectsOversizedImage(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "huge.png", imageOfSize(6*1024*1024), env.adminToken(t))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	resp.Body.Close()

	entries, _ := os.ReadDir(env.uploadDir)
	assert.Empty(t, entries)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "notes.png", []byte("plain text pretending to be a png"), env.adminToken(t))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()
}

func TestUpload_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "logo.png", imageOfSize(10), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUpload_MissingField(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("caption", "no file here"))
	require.NoError(t, writer.Close())

	resp := env.serve(t, &body, writer.FormDataContentType(), env.adminToken(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "image", decodeBody[ErrorResponse](t, resp).Field)
}
