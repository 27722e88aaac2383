package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"appbuilder/editor-backend/internal/alerts"
	"appbuilder/editor-backend/internal/auth"
	"appbuilder/editor-backend/internal/config"
	"appbuilder/editor-backend/internal/notifications"
	"appbuilder/editor-backend/internal/notifications/websocket"
	"appbuilder/editor-backend/internal/onboarding"
	"appbuilder/editor-backend/internal/settings"
	"appbuilder/editor-backend/internal/widgets/input"
	"appbuilder/editor-backend/internal/workspace"
)

// EditorAPI holds the editor API dependencies
type EditorAPI struct {
	Tokens        *auth.TokenManager
	Sessions      *websocket.Manager
	Notifications *notifications.Service
	Onboarding    onboarding.Service

	onboardingHandler *onboarding.Handler
	workspaceHandler  *workspace.Handler
	alertsHandler     *alerts.Handler
	settingsHandler   *settings.Handler
	inputHandler      *input.Handler
	websocketHandler  *websocket.Handler
	websocketEnabled  bool
}

// SetupEditorAPI builds repositories, services and handlers. db and gdb share one pool.
func SetupEditorAPI(db *sqlx.DB, gdb *gorm.DB, cfg *config.Config, logger *zap.Logger) (*EditorAPI, error) {
	sessions := websocket.NewManager(logger)
	notifier := notifications.NewService(sessions, logger)

	onboardingService := NewOnboardingService(db, gdb, notifier, logger)

	workspaceRepo := workspace.NewRepository(gdb)
	settingsService := settings.NewService(settings.NewRepository(db), logger)
	alertsService := alerts.NewService(notifier, logger)

	return &EditorAPI{
		Tokens:        auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL),
		Sessions:      sessions,
		Notifications: notifier,
		Onboarding:    onboardingService,

		onboardingHandler: onboarding.NewHandler(onboardingService, logger),
		workspaceHandler:  workspace.NewHandler(workspaceRepo, logger),
		alertsHandler:     alerts.NewHandler(alertsService, logger),
		settingsHandler:   settings.NewHandler(settingsService, logger),
		inputHandler:      input.NewHandler(),
		websocketHandler:  websocket.NewHandler(sessions, cfg.WebSocket.Path, logger),
		websocketEnabled:  cfg.WebSocket.Enabled,
	}, nil
}

// NewOnboardingService wires the onboarding engine to postgres and an optional publisher.
// The worker binary passes a nil publisher since it holds no editor sessions.
func NewOnboardingService(db *sqlx.DB, gdb *gorm.DB, publisher onboarding.StatusPublisher, logger *zap.Logger) onboarding.Service {
	repo := onboarding.NewRepository(db)
	source := workspace.NewSnapshotSource(workspace.NewRepository(gdb))
	dispatcher := onboarding.NewStoreDispatcher(repo, logger)
	return onboarding.NewService(repo, source, dispatcher, publisher, logger)
}

// RegisterEditorRoutes mounts the authenticated API under /api/v1 and the session endpoint
func RegisterEditorRoutes(router *gin.Engine, api *EditorAPI) {
	authenticated := router.Group("")
	authenticated.Use(auth.Middleware(api.Tokens))

	v1 := authenticated.Group("/api/v1")
	{
		api.onboardingHandler.RegisterRoutes(v1)
		api.workspaceHandler.RegisterRoutes(v1)
		api.alertsHandler.RegisterRoutes(v1)
		api.settingsHandler.RegisterRoutes(v1.Group("/settings"))
		api.inputHandler.RegisterRoutes(v1)
	}

	if api.websocketEnabled {
		api.websocketHandler.RegisterRoutes(authenticated)
	}
}

// Close releases the editor sessions
func (a *EditorAPI) Close() {
	a.Sessions.Close()
}
