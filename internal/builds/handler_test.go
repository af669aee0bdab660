package builds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, store := newTestService(t)
	build := sampleBuild()
	_, err := store.SaveWithKey(context.Background(), build.StorageKey, build.ContentType, strings.NewReader("# Ivan Petrov\n"))
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), build)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandlerList(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, "/api/v1/builds?limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var items []BuildResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Ivan_Petrov_CV.md", items[0].FileName)
	assert.Equal(t, "teamlead", items[0].Profiles)
}

func TestHandlerListRejectsBadLimit(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, serve(r, "/api/v1/builds?limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "/api/v1/builds?offset=-1").Code)
}

func TestHandlerDownload(t *testing.T) {
	r, _ := newTestRouter(t)
	build := sampleBuild()

	w := serve(r, "/api/v1/builds/"+build.ID+"/download")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Ivan Petrov\n", w.Body.String())
	assert.Equal(t, build.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Ivan_Petrov_CV.md")
}

func TestHandlerDownloadNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, "/api/v1/builds/6f1c1a3e-52d4-4a57-9bcb-1c2a4f9e8a99/download")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)
}

func TestHandlerTextAndRun(t *testing.T) {
	r, _ := newTestRouter(t)
	build := sampleBuild()

	w := serve(r, "/api/v1/builds/"+build.ID+"/text")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ivan Petrov")

	w = serve(r, "/api/v1/build-runs/"+build.BuildID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), build.ID)
}

func recordArtifact(t *testing.T, svc *Service, key, contentType, body string) Build {
	t.Helper()
	build := sampleBuild()
	build.ID = ""
	build.StorageKey = key
	build.ContentType = contentType
	_, err := svc.Store.SaveWithKey(context.Background(), key, contentType, strings.NewReader(body))
	require.NoError(t, err)
	saved, err := svc.Record(context.Background(), build)
	require.NoError(t, err)
	return saved
}

func TestHandlerTextOfHTMLBuild(t *testing.T) {
	r, svc := newTestRouter(t)
	build := recordArtifact(t, svc, sampleBuild().BuildID+"/en/teamlead/index.html", "text/html; charset=utf-8",
		`<!DOCTYPE html><html><head><style>h1{color:red}</style></head><body><h1>Ivan Petrov</h1><p>Go developer</p></body></html>`)

	w := serve(r, "/api/v1/builds/"+build.ID+"/text")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ivan Petrov\nGo developer", body.Text)
}

func TestHandlerTextOfUnsupportedType(t *testing.T) {
	r, svc := newTestRouter(t)
	build := recordArtifact(t, svc, sampleBuild().BuildID+"/en/teamlead/cv.bin", "application/x-binary", "\x00\x01")

	w := serve(r, "/api/v1/builds/"+build.ID+"/text")
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unsupported_type"`)
}
