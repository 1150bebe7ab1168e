package handler

import (
	"io"
	"net/http"

	"neighborhood/internal/delivery/api/response"
	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxUploadSize caps one uploaded file; the request body limit still applies on top.
const maxUploadSize = 8 << 20

var errUploadTooLarge = errors.New("uploaded file is too large")

// formFile reads an optional multipart file. A missing field yields nil.
func formFile(c echo.Context, field string) (*entity.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	if header.Size > maxUploadSize {
		return nil, errUploadTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(content) > maxUploadSize {
		return nil, errUploadTooLarge
	}

	return &entity.FileUpload{Filename: header.Filename, Content: content}, nil
}

// fileError answers a request whose file part could not be read.
func fileError(c echo.Context, field string, err error) error {
	if errors.Is(err, errUploadTooLarge) {
		return response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "The "+field+" file is too large", nil)
	}

	return response.BindingError(c, "INVALID_FILE", "Invalid "+field+" file")
}

// pathID parses a uuid path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))

	return id, err == nil
}
