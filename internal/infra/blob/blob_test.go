package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("zone_id\n"), 0o600))
	store := NewFileStore(dir)

	body, err := store.Open(context.Background(), "data.csv")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "zone_id\n", string(data))

	_, err = store.Open(context.Background(), "missing.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPStoreOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/readings.csv":
			_, _ = w.Write([]byte("zone_id,rh\n"))
		case "/data/broken.csv":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL+"/data/", 0)

	body, err := store.Open(context.Background(), "readings.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	require.Equal(t, "zone_id,rh\n", string(data))

	_, err = store.Open(context.Background(), "missing.csv")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(context.Background(), "broken.csv")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=500")
}

func TestMemoryStoreOpen(t *testing.T) {
	store := NewMemoryStore()
	payload := []byte("a,b\n")
	store.Put("x.csv", payload)
	payload[0] = 'z'

	body, err := store.Open(context.Background(), "x.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "a,b\n", string(data))

	_, err = store.Open(context.Background(), "y.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestObjectKeyAndEndpoint(t *testing.T) {
	require.Equal(t, "data.csv", objectKey("", "/data.csv"))
	require.Equal(t, "samba/data.csv", objectKey("samba", "data.csv"))
	require.Equal(t, "acct.r2.cloudflarestorage.com", sanitizeEndpoint("https://acct.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
}
