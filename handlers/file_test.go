package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protectedstorage/auth"
	"protectedstorage/notify"
	"protectedstorage/settings"
)

func newTestHandler(s settings.Static) http.Handler {
	return InitHandlers(s, auth.NewGate(), notify.New(s))
}

func testSettings(t *testing.T) settings.Static {
	t.Helper()
	return settings.Static{
		"FilePath":         filepath.Join(t.TempDir(), "storage.bin"),
		"UploadPassword":   "secret",
		"DownloadPassword": "dl-secret",
	}
}

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func doRequest(h http.Handler, method, password string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/file", bytes.NewReader(body))
	if password != "" {
		req.Header.Set("Authorization", password)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUploadDownloadRoundtrip(t *testing.T) {
	h := newTestHandler(testSettings(t))

	w := doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusNoContent, w.Code, "Upload with the correct password should succeed")

	w = doRequest(h, http.MethodGet, "dl-secret", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "hello", w.Body.String(), "Download should return the uploaded bytes")
}

func TestUploadReplacesExistingFile(t *testing.T) {
	s := testSettings(t)
	h := newTestHandler(s)

	require.Equal(t, http.StatusNoContent, doRequest(h, http.MethodPut, "secret", []byte("old content")).Code)
	require.Equal(t, http.StatusNoContent, doRequest(h, http.MethodPut, "secret", []byte("new")).Code)

	w := doRequest(h, http.MethodGet, "dl-secret", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new", w.Body.String(), "Old content must not survive a successful upload")
}

func TestUploadCreatesParentDirectory(t *testing.T) {
	s := testSettings(t)
	s["FilePath"] = filepath.Join(t.TempDir(), "nested", "deeper", "storage.bin")
	h := newTestHandler(s)

	w := doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusNoContent, w.Code)

	content, err := os.ReadFile(s["FilePath"])
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestMissingAuthorizationHeader(t *testing.T) {
	h := newTestHandler(testSettings(t))

	for _, method := range []string{http.MethodPut, http.MethodGet} {
		w := doRequest(h, method, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No Authorization header specified.", strings.TrimSpace(w.Body.String()))
	}
}

func TestInvalidPasswordThenCooldown(t *testing.T) {
	h := newTestHandler(testSettings(t))

	w := doRequest(h, http.MethodPut, "wrong", []byte("hello"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid upload password.", strings.TrimSpace(w.Body.String()))

	// Correct password immediately after: blocked by the cooldown.
	w = doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Regexp(t, regexp.MustCompile(`^Please wait (299|300) seconds\.$`), strings.TrimSpace(w.Body.String()))
}

func TestCooldownSharedAcrossDirections(t *testing.T) {
	h := newTestHandler(testSettings(t))

	w := doRequest(h, http.MethodGet, "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid download password.", strings.TrimSpace(w.Body.String()))

	w = doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code, "A failed download attempt must block uploads too")
	assert.Contains(t, w.Body.String(), "Please wait")
}

func TestMissingPasswordSetting(t *testing.T) {
	s := testSettings(t)
	delete(s, "UploadPassword")
	h := newTestHandler(s)

	w := doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Setting 'UploadPassword' not found.", strings.TrimSpace(w.Body.String()))
}

func TestMissingFilePathSetting(t *testing.T) {
	s := testSettings(t)
	delete(s, "FilePath")
	h := newTestHandler(s)

	w := doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Setting 'FilePath' not found.", strings.TrimSpace(w.Body.String()))
}

func TestDownloadMissingFile(t *testing.T) {
	s := testSettings(t)
	h := newTestHandler(s)

	w := doRequest(h, http.MethodGet, "dl-secret", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "A missing file is reported as 400, not 404")
	assert.Equal(t, "File not found.", strings.TrimSpace(w.Body.String()))

	_, err := os.Stat(s["FilePath"])
	assert.True(t, os.IsNotExist(err), "A failed download must not create the file")
}

func TestUploadTriggersNotification(t *testing.T) {
	texts := make(chan string, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		if err := jsonDecode(r, &payload); err == nil {
			texts <- payload.Text
		}
	}))
	defer hook.Close()

	s := testSettings(t)
	s["SlackWebhookUrls"] = hook.URL
	h := newTestHandler(s)

	w := doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusNoContent, w.Code)

	select {
	case text := <-texts:
		assert.Contains(t, text, "File has been updated.")
		assert.Contains(t, text, "IP=")
		assert.Contains(t, text, "URL=")
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a webhook call after a successful upload")
	}
}

func TestInvalidPasswordTriggersAsyncNotification(t *testing.T) {
	texts := make(chan string, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		if err := jsonDecode(r, &payload); err == nil {
			texts <- payload.Text
		}
	}))
	defer hook.Close()

	s := testSettings(t)
	s["SlackWebhookUrls"] = hook.URL
	h := newTestHandler(s)

	w := doRequest(h, http.MethodPut, "wrong", []byte("hello"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	select {
	case text := <-texts:
		assert.Contains(t, text, "An invalid upload password has been submitted.")
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a webhook call after an invalid password")
	}
}

func TestUnreachableWebhookDoesNotFailTransfer(t *testing.T) {
	s := testSettings(t)
	s["SlackWebhookUrls"] = "http://127.0.0.1:1/unreachable"
	h := newTestHandler(s)

	w := doRequest(h, http.MethodPut, "secret", []byte("hello"))
	assert.Equal(t, http.StatusNoContent, w.Code, "A failing webhook must not turn a successful transfer into an error")
}
