package platinium

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(server.URL, "user@example.com", "secret", 5*time.Second, log)
}

func loginHandler(t *testing.T, mux *http.ServeMux) {
	t.Helper()
	mux.HandleFunc("/user-token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		contentType := r.Header.Get("content-type")
		assert.Contains(t, contentType, "multipart/form-data")
		assert.Contains(t, contentType, "----WebKitFormBoundary")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "user@example.com", r.FormValue("login"))
		assert.Equal(t, "secret", r.FormValue("password"))
		assert.Equal(t, "undefined", r.FormValue("facebookid"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-123",
			"session":      map[string]any{"SessionId": "sess-1", "UserId": 42},
		})
	})
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	loginHandler(t, mux)
	client := newTestClient(t, mux)

	require.NoError(t, client.Login(context.Background()))
	assert.Equal(t, "sess-1", client.SessionID())
}

func TestLoginFailed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"code": 7, "msg": "wrong credentials"}`)
	})
	client := newTestClient(t, mux)

	err := client.Login(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, 7, apiErr.Code)
	assert.Equal(t, "wrong credentials", apiErr.Message)
}

func TestFetchClasses(t *testing.T) {
	mux := http.NewServeMux()
	loginHandler(t, mux)
	mux.HandleFunc("/pl/classes", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-123", r.Header.Get("authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(3), payload["LocationId"])
		assert.Equal(t, "2022-05-02T00:00:00", payload["StartDate"])
		assert.Equal(t, float64(7), payload["Days"])
		assert.Equal(t, float64(42), payload["UserId"])

		io.WriteString(w, `[{"Id": 6916, "Name": "BRZUCHOMANIA"}]`)
	})
	client := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background()))

	start := time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC)
	records, err := client.FetchClasses(context.Background(), 3, start, 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, `"BRZUCHOMANIA"`, string(records[0]["Name"]))
}

func TestFetchClassesRequiresLogin(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.FetchClasses(context.Background(), 3, time.Now(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestAddReservation(t *testing.T) {
	mux := http.NewServeMux()
	loginHandler(t, mux)
	mux.HandleFunc("/pl/classes/add-reservation", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(6916), payload["ClassScheduleId"])
		assert.Equal(t, "2022-05-09T18:00:00", payload["Date"])
		assert.Equal(t, float64(42), payload["UserId"])

		io.WriteString(w, `{"Status": 1}`)
	})
	client := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background()))

	status, err := client.AddReservation(context.Background(), 6916, "2022-05-09T18:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Status)
}

func TestGetLocations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pl/locations/with-classes", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		io.WriteString(w, `[{"Id": 3, "Name": "FP Zakopianka"}, {"Id": 4, "Name": "FP Galeria Bronowice"}]`)
	})
	client := newTestClient(t, mux)

	locations, err := client.GetLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, int64(3), locations[0].ID)
	assert.Equal(t, "FP Galeria Bronowice", locations[1].Name)
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pl/locations/with-classes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>gateway error</html>")
	})
	client := newTestClient(t, mux)

	_, err := client.GetLocations(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, 0, apiErr.Code)
	assert.Contains(t, apiErr.Message, "invalid JSON error message")
}

func TestInvalidResponseBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pl/locations/with-classes", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	})
	client := newTestClient(t, mux)

	_, err := client.GetLocations(context.Background())
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestRandomBoundaryID(t *testing.T) {
	id := randomBoundaryID(16)
	assert.Len(t, id, 16)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(boundaryChars, r))
	}
}
