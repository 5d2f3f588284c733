package tryon

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func gradioJob(t *testing.T, remoteURL string) Job {
	dir := t.TempDir()
	return Job{
		RemoteURL:  remoteURL,
		TargetPath: writeInput(t, dir, "target.png", []byte("target-bytes")),
		SourcePath: writeInput(t, dir, "source.png", []byte("source-bytes")),
		OutputDir:  t.TempDir(),
	}
}

func TestGradioProvider_Run(t *testing.T) {
	output := []byte("generated-image")
	var payload gradioRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		// Gallery response shape.
		fmt.Fprintf(w, `{"data":[["data:image/png;base64,%s"]]}`,
			base64.StdEncoding.EncodeToString(output))
	}))
	defer srv.Close()

	job := gradioJob(t, srv.URL)
	result, err := NewGradioProvider().Run(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, payload.Data, 6)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("target-bytes")), payload.Data[0])
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("source-bytes")), payload.Data[1])
	// Zero params get the remote defaults.
	assert.Equal(t, float64(1234), payload.Data[2])
	assert.Equal(t, float64(1), payload.Data[3])
	assert.Equal(t, float64(500), payload.Data[4])
	assert.Equal(t, float64(7), payload.Data[5])

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, output, data)
	assert.Contains(t, result.OutputURL, "/results/result_")
}

func TestGradioProvider_ExplicitParams(t *testing.T) {
	var payload gradioRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		// Single-image response shape, bare base64.
		fmt.Fprintf(w, `{"data":["%s"]}`, base64.StdEncoding.EncodeToString([]byte("img")))
	}))
	defer srv.Close()

	job := gradioJob(t, srv.URL)
	job.Params = Params{Seed: 42, SampleStep: 2, T: 250, ErodeKernelSize: 11}

	_, err := NewGradioProvider().Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, float64(42), payload.Data[2])
	assert.Equal(t, float64(2), payload.Data[3])
	assert.Equal(t, float64(250), payload.Data[4])
	assert.Equal(t, float64(11), payload.Data[5])
}

func TestGradioProvider_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewGradioProvider().Run(context.Background(), gradioJob(t, srv.URL))
	assert.ErrorContains(t, err, "500")
}

func TestGradioProvider_EmptyGallery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[[]]}`)
	}))
	defer srv.Close()

	_, err := NewGradioProvider().Run(context.Background(), gradioJob(t, srv.URL))
	assert.ErrorIs(t, err, ErrResultNotFound)
}
