package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/app/client/config"
	"hmis/internal/domain/sync"
)

func TestSplitArray(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr error
	}{
		{name: "array", in: ` [{"usn":"P1"},{"usn":"P2"}] `, want: 2},
		{name: "empty array", in: `[]`, want: 0},
		{name: "object", in: `{"usn":"P1"}`, wantErr: ErrNotArray},
		{name: "broken", in: `[{"usn":`, wantErr: ErrNotArray},
		{name: "scalar element", in: `[{"usn":"P1"}, 5]`, wantErr: ErrBadRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArray([]byte(tt.in))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestApp_EnqueueAndSync(t *testing.T) {
	// Arrange
	var (
		mu    gosync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"status":"success","synced_count":1,"total_received":1,"skipped_count":0}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		QueuePath:      filepath.Join(t.TempDir(), "queue.db"),
		RequestTimeout: 5 * time.Second,
		BatchSize:      100,
	}
	app, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	ctx := WithApp(context.Background(), app)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, app, got)

	_, err = app.Enqueue(ctx, sync.EntityVitals, []byte(`[{"usn":"P1","weight":56}]`))
	require.NoError(t, err)
	res, err := app.Enqueue(ctx, sync.EntityPatients, []byte(`[{"usn":"P1","fullName":"Asha"},{"usn":"P1","fullName":"Asha"}]`))
	require.NoError(t, err)
	assert.Equal(t, EnqueueResult{Added: 1, Duplicates: 1}, res)

	// Act
	results, err := app.Sync(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, results, 2)
	mu.Lock()
	assert.Equal(t, []string{"/api/sync/patients", "/api/sync/vitals"}, paths)
	mu.Unlock()

	pending, err := app.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	history, err := app.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, sync.EntityVitals, history[0].Entity)
	assert.Equal(t, 1, history[0].Synced)
}

func TestFromContext_Missing(t *testing.T) {
	_, err := FromContext(context.Background())

	assert.Error(t, err)
}
