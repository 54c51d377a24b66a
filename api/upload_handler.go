package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fundspark/fundspark-backend/errs"
	"github.com/fundspark/fundspark-backend/services"
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *services.Uploader
}

func newUploadHandler(uploader *services.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// uploadResult matches the editor upload contract: success flag plus the
// stored file URL.
type uploadResult struct {
	Success int        `json:"success"`
	File    uploadFile `json:"file"`
}

type uploadFile struct {
	URL string `json:"url"`
}

// uploadImage accepts a multipart image, validates and stores it, and
// returns its public URL.
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing file field"))
			return
		}
		defer file.Close()

		url, err := h.uploader.Save(file, header)
		if err != nil {
			var apiErr *errs.ApiErr
			if errors.As(err, &apiErr) {
				h.responder.WriteError(w, apiErr)
				return
			}
			h.logger.Error().Err(err).Msg("Failed to store uploaded image")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("error during saving", err))
			return
		}

		h.responder.WriteJSON(w, uploadResult{Success: 1, File: uploadFile{URL: url}})
	}
}

// fetch echoes an external image URL back in the upload contract shape. The
// editor uses it for by-URL image embedding, no download happens here.
func (h uploadHandler) fetch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.FormValue("url")
		if url == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing url field"))
			return
		}

		h.responder.WriteJSON(w, uploadResult{Success: 1, File: uploadFile{URL: url}})
	}
}
