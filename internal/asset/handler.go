package asset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/folio/service/internal/response"
)

// multipartMemory is the part of a multipart upload kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// Handler holds HTTP handlers for asset endpoints.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler creates a new asset Handler.
func NewHandler(svc *Service, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes, logger: logger}
}

type filesResponse struct {
	Files []string `json:"files" example:"essay.pdf,photo.jpg"`
}

// ListFiles godoc
//
//	@Summary		List uploaded files
//	@Description	Returns the file names of up to 50 assets in the upload folder, newest public id first.
//	@Tags			assets
//	@Produce		json
//	@Success		200	{object}	filesResponse
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/ [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListFiles(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list assets failed", "error", err)
		response.InternalError(w, "failed to fetch files")
		return
	}
	response.OK(w, filesResponse{Files: names})
}

// Upload godoc
//
//	@Summary		Upload file
//	@Description	Forward the multipart field "file" to the Asset Host. The file name without extension is suggested as public id.
//	@Tags			assets
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload"
//	@Success		200		{object}	storage.Asset
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		408		{object}	response.ErrorBody
//	@Failure		413		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.writeParseError(w, r, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 {
		response.BadRequest(w, "no file uploaded")
		return
	}

	asset, err := h.svc.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			h.logger.ErrorContext(r.Context(), "upload timed out", "file", header.Filename, "error", err)
		} else {
			h.logger.ErrorContext(r.Context(), "upload failed", "file", header.Filename, "error", err)
		}
		response.InternalError(w, "upload failed")
		return
	}

	h.logger.InfoContext(r.Context(), "asset uploaded", "public_id", asset.PublicID, "bytes", header.Size)
	response.OK(w, asset)
}

// writeParseError maps a failed multipart parse to a response. Only a request
// that is not multipart at all, or carries no parts, counts as missing a file;
// a body that broke off while being read is reported as such.
func (h *Handler) writeParseError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.TooLarge(w, "file too large")
		return
	}
	if isReadTimeout(err) {
		h.logger.WarnContext(r.Context(), "upload body read timed out", "error", err)
		response.Timeout(w, "upload timed out")
		return
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		h.logger.WarnContext(r.Context(), "upload body truncated", "error", err)
		response.BadRequest(w, "upload incomplete")
		return
	}
	response.BadRequest(w, "no file uploaded")
}

func isReadTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
