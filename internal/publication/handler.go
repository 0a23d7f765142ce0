package publication

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/folio/service/internal/response"
)

// maxBodyBytes caps the JSON body of POST /publications.
const maxBodyBytes = 1 << 20

// Handler holds HTTP handlers for publication endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler creates a new publication Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the publication endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
}

type createRequest struct {
	Title string `json:"title" example:"Essay"`
	URL   string `json:"url"   example:"http://host/a.pdf"`
}

func (req createRequest) valid() bool {
	return strings.TrimSpace(req.Title) != "" && strings.TrimSpace(req.URL) != ""
}

// List godoc
//
//	@Summary		List publications
//	@Description	Returns every publication in insertion order. The list is empty after a restart.
//	@Tags			publications
//	@Produce		json
//	@Success		200	{array}	Publication
//	@Router			/publications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.svc.List(r.Context()))
}

// Create godoc
//
//	@Summary		Create publication
//	@Description	Store a title/url pair under a freshly generated id. Unknown fields are rejected.
//	@Tags			publications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createRequest	true	"Publication"
//	@Success		201		{object}	Publication
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/publications [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req createRequest
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !req.valid() {
		response.BadRequest(w, ErrInvalidInput.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), req.Title, req.URL)
	if errors.Is(err, ErrInvalidInput) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create publication failed", "error", err)
		response.InternalError(w, "failed to create publication")
		return
	}

	response.Created(w, p)
}

// Delete godoc
//
//	@Summary		Delete publication
//	@Description	Remove the publication with the given id. Idempotent: an unknown id also returns 204.
//	@Tags			publications
//	@Param			id	path	string	true	"Publication id"
//	@Success		204
//	@Router			/publications/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	response.NoContent(w)
}
