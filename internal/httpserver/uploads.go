package httpserver

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
)

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

type UploadsHTTP struct {
	Dir string
}

// Upload stores a multipart image under a random name inside Dir.
func (h *UploadsHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.upload")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store file")
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store file")
	}

	l.Info("upload_success", "name", name, "size", fileHeader.Size)
	return c.JSON(http.StatusCreated, map[string]any{"path": "/uploads/" + name})
}

// Serve reads a stored file back. The name is resolved against Dir and must
// stay inside it.
func (h *UploadsHTTP) Serve(c echo.Context) error {
	name := c.Param("name")

	cleaned := filepath.Clean(name)
	if cleaned != name || strings.Contains(cleaned, "/") || strings.Contains(cleaned, "\\") || strings.HasPrefix(cleaned, ".") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file name")
	}

	full := filepath.Join(h.Dir, cleaned)
	if _, err := os.Stat(full); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}
	return c.File(full)
}
