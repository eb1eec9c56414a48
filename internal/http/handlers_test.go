package httpx

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/layerpeek/layerpeek/internal/data"
	"github.com/layerpeek/layerpeek/internal/domain/model"
	"github.com/layerpeek/layerpeek/internal/mocks"
	"github.com/layerpeek/layerpeek/internal/service"
)

func exportArchive(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	entries := []struct {
		name    string
		dir     bool
		content string
	}{
		{name: "etc/", dir: true},
		{name: "etc/hosts", content: "127.0.0.1 localhost\n"},
	}
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644, ModTime: time.Unix(1700000000, 0)}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.content))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.dir {
			_, err := tw.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	engine := mocks.NewMockImageEngine(ctrl)
	export := exportArchive(t)

	engine.EXPECT().EnsureImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref string) error {
			if strings.HasPrefix(ref, "ghost") {
				return fmt.Errorf("pull %s: manifest unknown", ref)
			}
			return nil
		}).AnyTimes()
	engine.EXPECT().InspectImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref string) (*model.ImageMetadata, error) {
			return &model.ImageMetadata{
				Reference: ref,
				Config:    model.ImageConfig{Architecture: "amd64", OS: "linux"},
				Layers:    []model.Layer{{Digest: "sha256:abc", Size: 2048}},
			}, nil
		}).AnyTimes()
	engine.EXPECT().CreateContainer(gomock.Any(), gomock.Any()).Return("ctr-1", nil).AnyTimes()
	engine.EXPECT().ExportPath(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(export)), nil
		}).AnyTimes()
	engine.EXPECT().RemoveContainer(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sandbox, err := service.NewSandboxManager(service.SandboxManagerOptions{Engine: engine, Logger: logger})
	require.NoError(t, err)

	inspections, err := service.NewInspectionService(service.InspectionServiceOptions{
		Jobs:    data.NewMemoryJobStore(),
		Cache:   data.NewMemoryResultCache(),
		Engine:  engine,
		Sandbox: sandbox,
		Logger:  logger,
	})
	require.NoError(t, err)

	files, err := service.NewFileService(service.FileServiceOptions{Sandbox: sandbox, Logger: logger})
	require.NoError(t, err)

	t.Cleanup(func() {
		inspections.Close()
		sandbox.Close()
	})

	router := NewRouter(RouterServices{Inspections: inspections, Files: files, Logger: logger})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postInspect(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/inspect", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// pollJob polls the status endpoint until the job is terminal.
func pollJob(t *testing.T, srv *httptest.Server, jobID string) model.JobStatusResponse {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(srv.URL + "/jobs/" + jobID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var status model.JobStatusResponse
		decodeBody(t, resp, &status)
		if status.Status.Terminal() {
			return status
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal status", jobID)
	return model.JobStatusResponse{}
}

func TestCreateInspection(t *testing.T) {
	srv := newTestServer(t)

	resp := postInspect(t, srv, `{"image":"alpine:3.20"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var created map[string]string
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created["job_id"])

	status := pollJob(t, srv, created["job_id"])
	assert.Equal(t, model.JobStatusCompleted, status.Status)
	require.NotNil(t, status.Result)
	assert.Equal(t, "alpine:3.20", status.Result.Image)
	require.NotEmpty(t, status.Result.Tree)
	assert.Equal(t, "/etc", status.Result.Tree[0].Path)
}

func TestCreateInspectionBadRequests(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"image":`},
		{"unknown field", `{"image":"a","tag":"b"}`},
		{"empty image", `{"image":""}`},
		{"missing image", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postInspect(t, srv, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetJobUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/jobs/no-such-job")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobFailurePropagatesToStatus(t *testing.T) {
	srv := newTestServer(t)

	resp := postInspect(t, srv, `{"image":"ghost:latest"}`)
	var created map[string]string
	decodeBody(t, resp, &created)

	status := pollJob(t, srv, created["job_id"])
	assert.Equal(t, model.JobStatusFailed, status.Status)
	require.NotNil(t, status.Error)
	assert.NotEmpty(t, *status.Error)
}

func TestGetJobResult(t *testing.T) {
	srv := newTestServer(t)

	resp := postInspect(t, srv, `{"image":"alpine:3.20"}`)
	var created map[string]string
	decodeBody(t, resp, &created)
	pollJob(t, srv, created["job_id"])

	res, err := http.Get(srv.URL + "/jobs/" + created["job_id"] + "/result")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var result model.InspectionResult
	decodeBody(t, res, &result)
	assert.Equal(t, "alpine:3.20", result.Image)
	require.Len(t, result.Layers, 1)

	missing, err := http.Get(srv.URL + "/jobs/no-such-job/result")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestGetFile(t *testing.T) {
	srv := newTestServer(t)

	q := url.Values{"image": {"alpine:3.20"}, "path": {"/etc/hosts"}}
	resp, err := http.Get(srv.URL + "/files?" + q.Encode())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rec model.FileRecord
	decodeBody(t, resp, &rec)
	assert.Equal(t, "hosts", rec.Name)
	assert.Equal(t, "127.0.0.1 localhost\n", string(rec.Content))
}

func TestGetFileFailuresRender404(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name  string
		query url.Values
	}{
		{"missing image", url.Values{"path": {"/etc/hosts"}}},
		{"missing path", url.Values{"image": {"alpine:3.20"}}},
		{"pull failure", url.Values{"image": {"ghost:latest"}, "path": {"/etc/hosts"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/files?" + tc.query.Encode())
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "file_not_found", body["error"])
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
