package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

// formFile opens the named multipart file and wraps it as a service upload.
// The returned closer must be called once the service is done reading.
func formFile(c echo.Context, field string) (ports.FileUpload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return ports.FileUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}

	src, err := fh.Open()
	if err != nil {
		return ports.FileUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read "+field+" file")
	}

	return ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      src,
	}, src, nil
}
