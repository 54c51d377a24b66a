package api

import (
	"github.com/fundspark/fundspark-backend/auth"
	"github.com/fundspark/fundspark-backend/config"
	"github.com/fundspark/fundspark-backend/database"
	"github.com/fundspark/fundspark-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens auth.TokenManager, uploader *services.Uploader, settings config.Settings) *routeHandlers {
	return &routeHandlers{
		authHandler:       newAuthHandler(db.UserRepo(), tokens, settings.BotToken),
		projectHandler:    newProjectHandler(db.ProjectRepo(), db.EngagementRepo(), uploader),
		engagementHandler: newEngagementHandler(db.ProjectRepo(), db.EngagementRepo()),
		uploadHandler:     newUploadHandler(uploader),
	}
}
