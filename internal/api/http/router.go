package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/observability"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	RequestTimeout time.Duration
	AuthMW         *auth.AuthMiddleware

	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Accounts      *handlers.AccountHandler
	Roles         *handlers.RoleHandler
	Programs      *handlers.ProgramHandler
	Projects      *handlers.ProjectHandler
	Tasks         *handlers.TaskHandler
	DailyReports  *handlers.DailyReportHandler
	Tickets       *handlers.TicketHandler
	Notifications *handlers.NotificationHandler
	Exports       *handlers.ExportHandler
	WS            *handlers.WSHandler
}

// NewApp builds the fiber application with shared middleware and all routes.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(deps.Logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(observability.RequestLogger(deps.Logger, deps.Metrics))
	app.Use(RequestTimeout(deps.RequestTimeout))

	registerRoutes(app, deps)
	return app
}

func registerRoutes(app *fiber.App, deps RouterDeps) {
	app.Get("/health", deps.Health.Live)
	app.Get("/health/ready", deps.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)
	authGroup.Post("/forgot-password", deps.Auth.ForgotPassword)
	authGroup.Post("/reset-password", deps.Auth.ResetPassword)
	authGroup.Get("/me", deps.AuthMW.Handle, deps.Auth.Me)
	authGroup.Post("/change-password", deps.AuthMW.Handle, deps.Auth.ChangePassword)

	// Websocket join authenticates via query token inside the handler.
	app.Get("/ws/tickets/:id", deps.WS.Upgrade, deps.WS.Serve())

	protected := api.Group("", deps.AuthMW.Handle)

	accounts := protected.Group("/accounts")
	accounts.Get("/", deps.Accounts.List)
	accounts.Get("/email/:email", deps.Accounts.GetByEmail)
	accounts.Get("/:id", deps.Accounts.Get)
	manageAccounts := auth.RequireFeature(domain.FeatureManageAccount)
	accounts.Post("/", manageAccounts, deps.Accounts.Create)
	accounts.Put("/:id", manageAccounts, deps.Accounts.Update)
	accounts.Delete("/:id", manageAccounts, deps.Accounts.Delete)

	roles := protected.Group("/roles", manageAccounts)
	roles.Get("/", deps.Roles.ListRoles)
	roles.Get("/:id", deps.Roles.GetRole)
	roles.Post("/", deps.Roles.CreateRole)
	roles.Put("/:id", deps.Roles.UpdateRole)
	roles.Delete("/:id", deps.Roles.DeleteRole)

	features := protected.Group("/features", manageAccounts)
	features.Get("/", deps.Roles.ListFeatures)
	features.Post("/", deps.Roles.CreateFeature)
	features.Put("/:id", deps.Roles.UpdateFeature)
	features.Delete("/:id", deps.Roles.DeleteFeature)

	manageProgram := auth.RequireFeature(domain.FeatureManageProgram)
	programs := protected.Group("/programs")
	programs.Get("/", deps.Programs.List)
	programs.Get("/account/:id", deps.Programs.ListByAccount)
	programs.Get("/:id", deps.Programs.Get)
	programs.Post("/", manageProgram, deps.Programs.Create)
	programs.Put("/:id", manageProgram, deps.Programs.Update)
	programs.Delete("/:id", manageProgram, deps.Programs.Delete)

	manageProject := auth.RequireFeature(domain.FeatureManageProject)
	projects := protected.Group("/projects")
	projects.Get("/", deps.Projects.List)
	projects.Get("/account/:id", deps.Projects.ListByAccount)
	projects.Get("/:id", deps.Projects.Get)
	projects.Post("/", manageProject, deps.Projects.Create)
	projects.Put("/:id", manageProject, deps.Projects.Update)
	projects.Delete("/:id", manageProject, deps.Projects.Delete)

	tasks := protected.Group("/tasks")
	tasks.Get("/", deps.Tasks.List)
	tasks.Get("/:id", deps.Tasks.Get)
	tasks.Post("/", manageProject, deps.Tasks.Create)
	tasks.Post("/generate", manageProject, deps.Tasks.Generate)
	tasks.Put("/:id", manageProject, deps.Tasks.Update)
	tasks.Delete("/:id", manageProject, deps.Tasks.Delete)

	evidences := protected.Group("/task-evidences")
	evidences.Get("/:id", deps.Tasks.GetEvidence)
	evidences.Post("/", deps.Tasks.CreateEvidence)
	evidences.Put("/:id", deps.Tasks.UpdateEvidence)
	evidences.Delete("/:id", deps.Tasks.DeleteEvidence)

	evidenceImages := protected.Group("/task-evidence-images")
	evidenceImages.Post("/", deps.Tasks.CreateEvidenceImage)
	evidenceImages.Put("/:id", deps.Tasks.UpdateEvidenceImage)
	evidenceImages.Delete("/:id", deps.Tasks.DeleteEvidenceImage)

	reports := protected.Group("/daily-reports")
	reports.Get("/", deps.DailyReports.List)
	reports.Get("/:id", deps.DailyReports.Get)
	reports.Post("/", deps.DailyReports.Create)
	reports.Put("/:id", deps.DailyReports.Update)
	reports.Delete("/:id", deps.DailyReports.Delete)

	manageTicket := auth.RequireFeature(domain.FeatureManageTicket)
	tickets := protected.Group("/tickets")
	tickets.Get("/", manageTicket, deps.Tickets.List)
	tickets.Get("/requester/:id", deps.Tickets.ListByRequester)
	tickets.Get("/handler/:id", deps.Tickets.ListByHandler)
	tickets.Get("/:id", deps.Tickets.Get)
	tickets.Get("/:id/conversation", deps.Tickets.Conversation)
	tickets.Post("/", deps.Tickets.Create)
	tickets.Post("/:id/messages", deps.Tickets.SendMessage)
	tickets.Put("/:id", manageTicket, deps.Tickets.Update)
	tickets.Delete("/:id", manageTicket, deps.Tickets.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", deps.Notifications.List)
	notifications.Post("/send", manageAccounts, deps.Notifications.Send)
	notifications.Put("/:id/read", deps.Notifications.MarkRead)
	notifications.Delete("/:id", deps.Notifications.Delete)

	exports := protected.Group("/exports")
	exports.Get("/tickets", manageTicket, deps.Exports.Tickets)
	exports.Get("/daily-reports", auth.RequireFeature(domain.FeatureManageDailyReport), deps.Exports.DailyReports)
	exports.Get("/projects/:id/evidence", manageProject, deps.Exports.ProjectEvidence)
}
