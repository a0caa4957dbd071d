// Package httpapi exposes the upload orchestration service over HTTP.
// Handlers stay thin: bind the request, call the service, map sentinel
// errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/okomarov/driveup/internal/logging"
	"github.com/okomarov/driveup/internal/server/models"
	"github.com/okomarov/driveup/internal/server/services"
)

// Orchestrator is the service surface the HTTP layer drives.
type Orchestrator interface {
	RequestUpload(ctx context.Context, ownerID string, req services.UploadRequest) (*services.UploadGrant, error)
	ConfirmUpload(ctx context.Context, fileID, reportedStatus string) error
	CreateFolder(ctx context.Context, ownerID, folderName string) (*models.Folder, error)
	SearchFiles(ctx context.Context, ownerID, text string) ([]*models.File, error)
}

// Server hosts the public HTTP endpoint.
type Server struct {
	address   string
	logger    logging.Logger
	uploads   Orchestrator
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, uploads Orchestrator, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		uploads:   uploads,
		jwtSecret: []byte(secretKey),
	}
}

// routes builds the echo instance. Split out from Run so tests can drive
// handlers through httptest without binding a port.
func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/ping", s.handlePing)

	authed := e.Group("", s.requireOwner)
	authed.POST("/upload", s.handleUpload)
	authed.POST("/file-uploaded", s.handleFileUploaded)
	authed.POST("/create-folder", s.handleCreateFolder)
	authed.GET("/search/:text", s.handleSearch)

	return e
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	e := s.routes()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
