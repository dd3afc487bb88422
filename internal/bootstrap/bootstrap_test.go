package bootstrap_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rickgao/emoji-trader/internal/api"
	"github.com/rickgao/emoji-trader/internal/auth"
	"github.com/rickgao/emoji-trader/internal/bootstrap"
	"github.com/rickgao/emoji-trader/internal/bootstrap/mocks"
	"github.com/rickgao/emoji-trader/internal/credentials"
	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type exchangeStub struct {
	healthStatus  int
	healthHangs   bool
	healthCalls   atomic.Int32
	registrations atomic.Int32
	lastTeamID    atomic.Value
}

func (e *exchangeStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(api.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		e.healthCalls.Add(1)
		if e.healthHangs {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		w.WriteHeader(e.healthStatus)
	})
	mux.HandleFunc(api.RegisterPath, func(w http.ResponseWriter, r *http.Request) {
		e.registrations.Add(1)
		var req model.RegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode register request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		e.lastTeamID.Store(req.TeamID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"teamId":"TEAM-AWESOME","apiKey":"abc123","initialCash":100000}`))
	})
	return mux
}

func newHarness(t *testing.T, stub *exchangeStub) (*api.Client, *credentials.FileStore) {
	t.Helper()
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, api.WithLogger(discardLogger()))
	store := credentials.NewFileStore(filepath.Join(t.TempDir(), credentials.DefaultFileName), discardLogger())
	return client, store
}

func TestRun_FirstStartRegistersAndPersists(t *testing.T) {
	stub := &exchangeStub{healthStatus: http.StatusOK}
	client, store := newHarness(t, stub)

	seq := bootstrap.New("TEAM-AWESOME", client, store, bootstrap.WithLogger(discardLogger()))
	res, err := seq.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Registered)
	assert.Equal(t, bootstrap.StateReady, seq.State())
	assert.Equal(t, int32(1), stub.registrations.Load())
	assert.Equal(t, "TEAM-AWESOME", stub.lastTeamID.Load())

	saved, ok := store.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, "TEAM-AWESOME", saved.TeamID)
	assert.Equal(t, "abc123", saved.APIKey)
	assert.True(t, saved.InitialCash.Equal(model.NewCash(100000)))

	headers := client.Headers()
	assert.Equal(t, "TEAM-AWESOME", headers.Get(auth.HeaderTeamID))
	assert.Equal(t, "abc123", headers.Get(auth.HeaderAPIKey))
}

func TestRun_RestartReusesStoredCredentials(t *testing.T) {
	stub := &exchangeStub{healthStatus: http.StatusOK}
	client, store := newHarness(t, stub)

	stored := &model.Credentials{TeamID: "TEAM-AWESOME", APIKey: "xyz", InitialCash: model.NewCash(5)}
	require.NoError(t, store.Save(context.Background(), stored))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	seq := bootstrap.New("TEAM-AWESOME", client, store, bootstrap.WithLogger(discardLogger()))
	res, err := seq.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Registered)
	assert.Zero(t, stub.registrations.Load())
	assert.Equal(t, "xyz", client.Headers().Get(auth.HeaderAPIKey))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	stub := &exchangeStub{healthStatus: http.StatusOK}
	client, store := newHarness(t, stub)

	for i := 0; i < 2; i++ {
		seq := bootstrap.New("TEAM-AWESOME", client, store, bootstrap.WithLogger(discardLogger()))
		_, err := seq.Run(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), stub.registrations.Load())
	assert.Len(t, client.Headers().Values(auth.HeaderAPIKey), 1)
}

func TestRun_UnhealthyExchangeTouchesNothing(t *testing.T) {
	stub := &exchangeStub{healthStatus: http.StatusInternalServerError}
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()
	client := api.NewClient(srv.URL, api.WithLogger(discardLogger()))

	// No expectations: any Load or Save fails the test.
	store := mocks.NewMockCredentialStore(gomock.NewController(t))

	seq := bootstrap.New("TEAM-AWESOME", client, store, bootstrap.WithLogger(discardLogger()))
	res, err := seq.Run(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, bootstrap.ErrConnectivity)
	assert.Equal(t, bootstrap.StateAborted, seq.State())
	assert.Zero(t, stub.registrations.Load())
	assert.Empty(t, client.Headers().Get(auth.HeaderAPIKey))
}

func TestRun_HealthCheckTimeoutTouchesNothing(t *testing.T) {
	stub := &exchangeStub{healthHangs: true}
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()
	client := api.NewClient(srv.URL,
		api.WithLogger(discardLogger()),
		api.WithTimeout(50*time.Millisecond),
	)

	store := mocks.NewMockCredentialStore(gomock.NewController(t))

	seq := bootstrap.New("TEAM-AWESOME", client, store, bootstrap.WithLogger(discardLogger()))
	start := time.Now()
	res, err := seq.Run(context.Background())
	assert.Less(t, time.Since(start), 4*time.Second, "the client timeout bounds the check")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, bootstrap.ErrConnectivity)
	assert.False(t, failure.IsCancelled(err), "a timeout is an outage, not an interrupt")
	assert.Equal(t, bootstrap.StateAborted, seq.State())
	assert.Equal(t, int32(1), stub.healthCalls.Load())
	assert.Zero(t, stub.registrations.Load())
	assert.Empty(t, client.Headers().Get(auth.HeaderAPIKey))
}
