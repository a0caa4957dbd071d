package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okomarov/driveup/internal/common"
	"github.com/okomarov/driveup/internal/logging"
	"github.com/okomarov/driveup/internal/server/auth"
	"github.com/okomarov/driveup/internal/server/models"
	"github.com/okomarov/driveup/internal/server/services"
)

const testSecret = "test-secret"

// -------- fake orchestrator --------

type fakeOrchestrator struct {
	grant     *services.UploadGrant
	uploadErr error

	confirmErr error

	folder    *models.Folder
	folderErr error

	files     []*models.File
	searchErr error

	gotOwnerID string
	gotReq     services.UploadRequest
	gotFileID  string
	gotStatus  string
	gotFolder  string
	gotText    string
}

func (f *fakeOrchestrator) RequestUpload(ctx context.Context, ownerID string, req services.UploadRequest) (*services.UploadGrant, error) {
	f.gotOwnerID = ownerID
	f.gotReq = req
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.grant, nil
}

func (f *fakeOrchestrator) ConfirmUpload(ctx context.Context, fileID, reportedStatus string) error {
	f.gotFileID = fileID
	f.gotStatus = reportedStatus
	return f.confirmErr
}

func (f *fakeOrchestrator) CreateFolder(ctx context.Context, ownerID, folderName string) (*models.Folder, error) {
	f.gotOwnerID = ownerID
	f.gotFolder = folderName
	if f.folderErr != nil {
		return nil, f.folderErr
	}
	return f.folder, nil
}

func (f *fakeOrchestrator) SearchFiles(ctx context.Context, ownerID, text string) ([]*models.File, error) {
	f.gotOwnerID = ownerID
	f.gotText = text
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.files, nil
}

func newTestServer(t *testing.T, orch Orchestrator) *Server {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(":0", logger, orch, testSecret)
}

func bearerFor(t *testing.T, ownerID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(ownerID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, s *Server, method, path, authHeader, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// -------- tests --------

func TestPing_NoAuthRequired(t *testing.T) {
	s := newTestServer(t, &fakeOrchestrator{})

	rec := doRequest(t, s, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireOwner_MissingToken(t *testing.T) {
	s := newTestServer(t, &fakeOrchestrator{})

	rec := doRequest(t, s, http.MethodPost, "/upload", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireOwner_InvalidToken(t *testing.T) {
	s := newTestServer(t, &fakeOrchestrator{})

	rec := doRequest(t, s, http.MethodPost, "/upload", "Bearer not.a.jwt", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpload_Success(t *testing.T) {
	orch := &fakeOrchestrator{grant: &services.UploadGrant{
		URL:    "https://signed.example/put",
		FileID: "file-1",
		Key:    "u1/vacation/photo.png",
	}}
	s := newTestServer(t, orch)

	body := `{"fileName":"photo.png","fileType":"image/png","fileSize":2048,"folderName":"vacation"}`
	rec := doRequest(t, s, http.MethodPost, "/upload", bearerFor(t, "u1"), body)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "https://signed.example/put", got["url"])
	assert.Equal(t, "file-1", got["fileId"])
	assert.Equal(t, "u1/vacation/photo.png", got["filePath"])

	// principal comes from the token, not the body
	assert.Equal(t, "u1", orch.gotOwnerID)
	assert.Equal(t, services.UploadRequest{
		FileName: "photo.png", FileType: "image/png", FileSize: 2048, FolderName: "vacation",
	}, orch.gotReq)
}

func TestUpload_ValidationError(t *testing.T) {
	orch := &fakeOrchestrator{uploadErr: common.ErrorValidation}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/upload", bearerFor(t, "u1"), `{"fileName":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_DependencyError(t *testing.T) {
	orch := &fakeOrchestrator{uploadErr: errors.New("s3 down")}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/upload", bearerFor(t, "u1"),
		`{"fileName":"x","fileType":"t","fileSize":1}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// dependency detail must not leak to the client
	assert.Equal(t, "internal server error", decodeBody(t, rec)["error"])
}

func TestFileUploaded_Success(t *testing.T) {
	orch := &fakeOrchestrator{}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/file-uploaded", bearerFor(t, "u1"),
		`{"fileId":"file-1","status":"upload"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "File metadata updated successfully", decodeBody(t, rec)["message"])
	assert.Equal(t, "file-1", orch.gotFileID)
}

func TestFileUploaded_UnknownFile(t *testing.T) {
	orch := &fakeOrchestrator{confirmErr: common.ErrorNotFound}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/file-uploaded", bearerFor(t, "u1"),
		`{"fileId":"missing","status":"upload"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFileUploaded_MissingFields(t *testing.T) {
	orch := &fakeOrchestrator{confirmErr: common.ErrorValidation}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/file-uploaded", bearerFor(t, "u1"), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFolder_Success(t *testing.T) {
	orch := &fakeOrchestrator{folder: &models.Folder{
		FolderID: "f1", Name: "vacation", OwnerID: "u1", Path: "u1/vacation",
	}}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/create-folder", bearerFor(t, "u1"),
		`{"folderName":"vacation"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Contains(t, got["message"], "vacation")
	folder, ok := got["folder"].(map[string]any)
	require.True(t, ok, "folder must be an object")
	assert.Equal(t, "u1/vacation", folder["path"])
	assert.Equal(t, "vacation", orch.gotFolder)
}

func TestCreateFolder_MissingName(t *testing.T) {
	orch := &fakeOrchestrator{folderErr: common.ErrorValidation}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodPost, "/create-folder", bearerFor(t, "u1"), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_Success(t *testing.T) {
	orch := &fakeOrchestrator{files: []*models.File{
		{FileID: "id1", Name: "photo.png", Key: "u1/photo.png", Status: models.StatusUploaded},
	}}
	s := newTestServer(t, orch)

	rec := doRequest(t, s, http.MethodGet, "/search/photo", bearerFor(t, "u1"), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "photo", orch.gotText)
	assert.Equal(t, "u1", orch.gotOwnerID)

	got := decodeBody(t, rec)
	files, ok := got["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 1)
}
