package api

import (
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/fundspark/fundspark-backend/blocks"
	"github.com/fundspark/fundspark-backend/database"
	"github.com/fundspark/fundspark-backend/errs"
	"github.com/fundspark/fundspark-backend/models"
	"github.com/fundspark/fundspark-backend/services"
)

const (
	topProjectsLimit  = 5
	searchQueryMinLen = 3
	searchQueryMaxLen = 20
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectRepo    *database.ProjectRepo
	engagementRepo *database.EngagementRepo
	uploader       *services.Uploader
}

func newProjectHandler(projectRepo *database.ProjectRepo, engagementRepo *database.EngagementRepo, uploader *services.Uploader) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectRepo:    projectRepo,
		engagementRepo: engagementRepo,
		uploader:       uploader,
	}
}

// projectRequest carries the ordered block sequence and the funding target
// for both create and update.
type projectRequest struct {
	Blocks        []blocks.Block `json:"blocks"`
	RequiredFunds int64          `json:"requiredFunds"`
}

// ShortProject is the listing/search representation of a project.
type ShortProject struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	ImageURL *string   `json:"image_url"`
}

func toShortProjects(projects []*models.Project) []ShortProject {
	out := make([]ShortProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, ShortProject{
			ID:       p.ID,
			Title:    p.Title,
			Subtitle: p.Subtitle,
			ImageURL: p.ImageURL,
		})
	}
	return out
}

// validateRequest applies the document rule and the funding-target check,
// returning the derived summary and the serialized block sequence.
func (h projectHandler) validateRequest(req projectRequest) (blocks.Summary, datatypes.JSON, error) {
	if req.RequiredFunds <= 0 {
		return blocks.Summary{}, nil, errs.NewBadRequestError("requiredFunds must be a positive amount")
	}

	summary, err := blocks.ValidateDocument(req.Blocks)
	if err != nil {
		return blocks.Summary{}, nil, errs.NewInvalidDocumentError(err.Error())
	}

	data, err := json.Marshal(req.Blocks)
	if err != nil {
		return blocks.Summary{}, nil, errs.NewInternalErrorWithCause("failed to serialize blocks", err)
	}
	return summary, data, nil
}

// createProject validates the block document and persists it verbatim with
// the derived summary fields.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromCtx(r.Context())

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		summary, data, err := h.validateRequest(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			UserID:        user.ID,
			Data:          data,
			Title:         summary.Title,
			Subtitle:      summary.Subtitle,
			ImageURL:      summary.ImageURL,
			RequiredFunds: req.RequiredFunds,
		}
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"id":     project.ID,
			"detail": "Project created",
		})
	}
}

// updateProject replaces the block document of an owned project.
func (h projectHandler) updateProject() http.HandlerFunc {
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
		if project.UserID != user.ID {
			h.responder.WriteError(w, errs.NewNotOwnerError("project"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		summary, data, err := h.validateRequest(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project.Data = data
		project.Title = summary.Title
		project.Subtitle = summary.Subtitle
		project.ImageURL = summary.ImageURL
		project.RequiredFunds = req.RequiredFunds

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"detail": "Project updated"})
	}
}

// getProject returns a project with engagement counts. Authenticated callers
// get a view recorded and their like state reported; anonymous callers just
// read.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		liked := false
		if user, ok := userFromCtx(r.Context()); ok {
			if err := h.engagementRepo.RecordView(user.ID, project.ID); err != nil {
				h.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to record view")
			}
			liked, err = h.engagementRepo.HasLiked(user.ID, project.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check like", "project like", err))
				return
			}
		}

		likes, views, shares, err := h.engagementRepo.Counts(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count engagement", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"id": project.ID,
			"user": map[string]any{
				"id":          project.User.ID,
				"telegram_id": project.User.TelegramID,
				"username":    project.User.Username,
				"first_name":  project.User.FirstName,
				"last_name":   project.User.LastName,
			},
			"data":           json.RawMessage(project.Data),
			"views_count":    views,
			"likes_count":    likes,
			"shares_count":   shares,
			"created_time":   project.CreatedTime.Format(time.RFC3339),
			"liked":          liked,
			"required_funds": project.RequiredFunds,
		})
	}
}

// deleteProject removes an owned project and best-effort deletes the upload
// files its image blocks reference.
func (h projectHandler) deleteProject() http.HandlerFunc {
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
		if project.UserID != user.ID {
			h.responder.WriteError(w, errs.NewNotOwnerError("project"))
			return
		}

		var blks []blocks.Block
		if err := json.Unmarshal(project.Data, &blks); err != nil {
			// Stored data is written by the validator, so this should not
			// happen; deletion proceeds without file cleanup.
			h.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to decode stored blocks")
		} else {
			h.uploader.RemoveAll(blocks.ImageFileURLs(blks))
		}

		if err := h.projectRepo.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"detail": "Deleted"})
	}
}

// myProjects lists the caller's own projects.
func (h projectHandler) myProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromCtx(r.Context())

		projects, err := h.projectRepo.FindByUser(user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, toShortProjects(projects))
	}
}

func (h projectHandler) mostViewed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.MostViewed(topProjectsLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("rank projects", "projects", err))
			return
		}
		h.responder.WriteJSON(w, toShortProjects(projects))
	}
}

func (h projectHandler) mostLiked() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.MostLiked(topProjectsLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("rank projects", "projects", err))
			return
		}
		h.responder.WriteJSON(w, toShortProjects(projects))
	}
}

// searchProjects runs the similarity-ranked title/subtitle search. No match
// is a 404 by contract, not an empty list.
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if n := utf8.RuneCountInString(query); n < searchQueryMinLen || n > searchQueryMaxLen {
			h.responder.WriteError(w, errs.NewBadRequestError("query must be between 3 and 20 characters"))
			return
		}

		projects, err := h.projectRepo.Search(query)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search projects", "projects", err))
			return
		}
		if len(projects) == 0 {
			h.responder.WriteError(w, errs.NewNotFound("projects"))
			return
		}

		h.responder.WriteJSON(w, toShortProjects(projects))
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}
