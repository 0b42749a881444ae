// internal/controller/edition_controller.go
package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/service"
	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/storage"
)

// maxUploadBytes caps page image uploads at 15 MiB.
const maxUploadBytes = 15 << 20

type EditionController struct {
	EditionService *service.EditionService
	Store          storage.ObjectStore
	Log            *zap.SugaredLogger
}

func (c *EditionController) List(w http.ResponseWriter, r *http.Request) {
	editions, err := c.EditionService.List()
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Ediciones recuperadas", editions)
}

func (c *EditionController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Titulo      string  `json:"titulo"`
		Descripcion *string `json:"descripcion"`
		Fecha       *string `json:"fecha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	edition, err := c.EditionService.Create(body.Titulo, body.Descripcion, body.Fecha)
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Edición creada", map[string]string{"id": edition.ID})
}

func (c *EditionController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.EditionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Edición eliminada", nil)
}

// UploadPage handles the multipart POST /api/admin/editions/{id}/pages:
// a file field plus pageNumber and an optional isCover flag.
func (c *EditionController) UploadPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Faltan datos (archivo o número de página)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Faltan datos (archivo o número de página)")
		return
	}
	defer file.Close()

	numero, err := strconv.Atoi(r.FormValue("pageNumber"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Faltan datos (archivo o número de página)")
		return
	}
	isCover := r.FormValue("isCover") == "true"

	key, err := c.EditionService.UploadPage(
		r.Context(), id, numero, isCover,
		header.Header.Get("Content-Type"), file, header.Size,
	)
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Página subida", map[string]string{"key": key})
}

func (c *EditionController) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := c.EditionService.ListPages(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, c.Log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Páginas recuperadas", pages)
}

// ServeImage streams a stored object. Keys are content-addressed per upload,
// so the response is safe to cache for a year.
func (c *EditionController) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		respondError(w, http.StatusBadRequest, "Image key is required")
		return
	}

	body, contentType, etag, err := c.Store.Get(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusNotFound, "Image not found")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
