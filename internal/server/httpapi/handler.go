package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okomarov/driveup/internal/common"
	"github.com/okomarov/driveup/internal/server/services"
)

type uploadRequest struct {
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	FolderName string `json:"folderName"`
}

type fileUploadedRequest struct {
	FileID string `json:"fileId"`
	Status string `json:"status"`
}

type createFolderRequest struct {
	FolderName string `json:"folderName"`
}

func (s *Server) handlePing(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) handleUpload(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := c.Get(ownerIDContextKey).(string)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid requester"})
	}

	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	grant, err := s.uploads.RequestUpload(ctx, ownerID, services.UploadRequest{
		FileName:   req.FileName,
		FileType:   req.FileType,
		FileSize:   req.FileSize,
		FolderName: req.FolderName,
	})
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"url":      grant.URL,
		"fileId":   grant.FileID,
		"filePath": grant.Key,
	})
}

func (s *Server) handleFileUploaded(c echo.Context) error {
	ctx := c.Request().Context()

	var req fileUploadedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := s.uploads.ConfirmUpload(ctx, req.FileID, req.Status); err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "File metadata updated successfully"})
}

func (s *Server) handleCreateFolder(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := c.Get(ownerIDContextKey).(string)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid requester"})
	}

	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	folder, err := s.uploads.CreateFolder(ctx, ownerID, req.FolderName)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Folder %q created successfully", folder.Name),
		"folder":  folder,
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	ownerID, ok := c.Get(ownerIDContextKey).(string)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid requester"})
	}

	files, err := s.uploads.SearchFiles(ctx, ownerID, c.Param("text"))
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"files": files})
}

// errorResponse maps sentinel errors to status codes. Dependency failures
// stay generic on the wire; the detail goes to the log.
func (s *Server) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
