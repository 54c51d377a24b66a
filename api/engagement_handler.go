package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fundspark/fundspark-backend/database"
	"github.com/fundspark/fundspark-backend/errs"
)

type engagementHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectRepo    *database.ProjectRepo
	engagementRepo *database.EngagementRepo
}

func newEngagementHandler(projectRepo *database.ProjectRepo, engagementRepo *database.EngagementRepo) engagementHandler {
	logger := log.With().Str("handlerName", "engagementHandler").Logger()

	return engagementHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectRepo:    projectRepo,
		engagementRepo: engagementRepo,
	}
}

// toggleLike flips the caller's like on a project. 201 when the like was
// created, 200 when it was removed.
func (h engagementHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromCtx(r.Context())

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		liked, err := h.engagementRepo.ToggleLike(user.ID, project.ID)
		if err != nil {
			h.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to toggle like")
			h.responder.WriteError(w, errs.NewBackendUnavailableError("toggle like", err))
			return
		}

		if liked {
			h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]string{"detail": "Liked"})
			return
		}
		h.responder.WriteJSON(w, map[string]string{"detail": "Disliked"})
	}
}

// setShare records a one-time share. A repeat attempt is rejected, not
// silently ignored.
func (h engagementHandler) setShare() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromCtx(r.Context())

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := h.engagementRepo.RecordShare(user.ID, project.ID); err != nil {
			if errs.IsAlreadyShared(err) {
				h.responder.WriteError(w, err)
				return
			}
			h.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to record share")
			h.responder.WriteError(w, errs.NewBackendUnavailableError("record share", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"detail": "Project shared"})
	}
}
