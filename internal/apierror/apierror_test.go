package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pka-index-backend/internal/models"
	"pka-index-backend/internal/repository"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		logged  bool
	}{
		{"route not found", RouteNotFound(), http.StatusNotFound, "This route was not found.", false},
		{"request timeout", RequestTimeout(), http.StatusRequestTimeout, "Your request timed out.", false},
		{"row not found", errors.Wrap(repository.ErrNotFound, "get episode 9"), http.StatusNotFound, "This data was not found in the database.", false},
		{"empty catalog", errors.Wrap(repository.ErrEmptyCatalog, "latest"), http.StatusNotFound, "No episodes are available.", false},
		{"abandoned query", errors.Wrap(repository.ErrAbandoned, "list events"), http.StatusRequestTimeout, "Your request timed out.", false},
		{"storage unavailable", &repository.StorageError{Op: "get episode 1", Err: errors.New("dial tcp: connection refused")}, http.StatusInternalServerError, "A database error occurred.", true},
		{"bad path param", BadPathParam("number", "abc", errors.New("not a number")), http.StatusBadRequest, "Invalid URL: cannot parse `abc` for parameter `number`: not a number", false},
		{"unsupported path param", UnsupportedPathParam("number"), http.StatusInternalServerError, "This path is invalid.", true},
		{"internal", Internal(errors.New("nil map write")), http.StatusInternalServerError, "An internal error has occurred.", true},
		{"unknown error", errors.New("something odd"), http.StatusInternalServerError, "An internal error has occurred.", true},
		{"too many requests", TooManyRequests(), http.StatusTooManyRequests, "Too many requests. Please try again later.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.err)
			assert.Equal(t, tc.status, c.Status)
			assert.Equal(t, tc.message, c.Message)
			assert.Equal(t, tc.logged, c.Log)
		})
	}
}

func TestClassify_WrappedAPIError(t *testing.T) {
	c := Classify(errors.Wrap(RequestTimeout(), "deadline"))
	assert.Equal(t, http.StatusRequestTimeout, c.Status)
}

func TestNewUserError(t *testing.T) {
	before := time.Now().Add(-time.Second)

	ue := NewUserError(http.StatusNotFound, "", "gone")
	assert.Equal(t, 404, ue.Status)
	assert.Equal(t, "Not Found", ue.Error)
	assert.Equal(t, "gone", ue.Message)

	ts, err := time.Parse(time.RFC3339, ue.Timestamp)
	require.NoError(t, err)
	assert.True(t, ts.After(before))

	assert.Equal(t, "EpisodeMissing", NewUserError(http.StatusNotFound, "EpisodeMissing", "x").Error)
	assert.Equal(t, "Unknown Error", NewUserError(599, "", "x").Error)
}

func decodeUserError(t *testing.T, rr *httptest.ResponseRecorder) models.UserError {
	t.Helper()
	var body models.UserError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestWrite_ClientErrorNotLogged(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	req := httptest.NewRequest(http.MethodGet, "/v1/api/episode/watch/9", nil)
	rr := httptest.NewRecorder()

	Write(rr, req, errors.Wrap(repository.ErrNotFound, "get episode 9"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decodeUserError(t, rr)
	assert.Equal(t, 404, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "This data was not found in the database.", body.Message)
	assert.Empty(t, hook.AllEntries())
}

func TestWrite_ServerErrorLoggedButHidden(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	req := httptest.NewRequest(http.MethodGet, "/v1/api/episode/watch/1", nil)
	rr := httptest.NewRecorder()

	Write(rr, req, &repository.StorageError{Op: "get episode 1", Err: errors.New("pq: password authentication failed")})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	body := decodeUserError(t, rr)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Equal(t, "A database error occurred.", body.Message)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.ErrorLevel, entry.Level)
	assert.Equal(t, "/v1/api/episode/watch/1", entry.Data["path"])
	assert.Contains(t, entry.Data[log.ErrorKey].(error).Error(), "password authentication failed")
}

func TestWrite_CustomLabel(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Write(rr, req, &Error{Kind: KindRouteNotFound, Label: "NoSuchRoute", Message: "nothing here"})

	body := decodeUserError(t, rr)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "NoSuchRoute", body.Error)
	assert.Equal(t, "nothing here", body.Message)
}
