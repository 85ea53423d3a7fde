package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/inquiry"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CategoryUC *usecase.CategoryUseCase
	DeviceUC   *usecase.DeviceUseCase
	SettingsUC *usecase.SettingsUseCase
	ProjectUC  *project.ProjectUseCase
	InquiryUC  *inquiry.InquiryUseCase
	DocumentUC *inquiry.DocumentUseCase
	Dashboard  *analytics.DashboardUseCase
	Blacklist  ports.TokenBlacklist
	JWTSecret  string
}

// Router registra las rutas de la API. Los casos de uso vuelven a validar el rol;
// RequireRole corta antes las rutas exclusivas de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Blacklist))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	// Usuarios (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)
	users.Put("/:id/password", userHandler.SetPassword)

	// Catálogo
	catalog := NewCatalogHandler(deps.CategoryUC, deps.DeviceUC)
	protected.Get("/categories", catalog.ListCategories)
	protected.Post("/categories", adminOnly, catalog.CreateCategory)
	protected.Put("/categories/:id", adminOnly, catalog.UpdateCategory)
	protected.Delete("/categories/:id", adminOnly, catalog.DeleteCategory)
	protected.Get("/devices", catalog.SearchDevices)
	protected.Get("/devices/:id", catalog.GetDevice)
	protected.Post("/devices", adminOnly, catalog.CreateDevice)
	protected.Put("/devices/:id", adminOnly, catalog.UpdateDevice)
	protected.Delete("/devices/:id", adminOnly, catalog.DeleteDevice)

	// Configuración de precios (admin)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", adminOnly, settingsHandler.Get)
	protected.Put("/settings", adminOnly, settingsHandler.Update)
	protected.Post("/settings", adminOnly, settingsHandler.Create)
	protected.Post("/pricing/simulate", adminOnly, settingsHandler.Simulate)

	// Proyectos
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	inquiryHandler := NewInquiryHandler(deps.InquiryUC, deps.DocumentUC)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/stats", NewDashboardHandler(deps.Dashboard).ProjectStats)
	projects.Get("/:id", projectHandler.Get)
	projects.Delete("/:id", adminOnly, projectHandler.Delete)
	projects.Post("/:id/approve", projectHandler.Approve)
	projects.Post("/:id/reject", projectHandler.Reject)
	projects.Post("/:id/status", projectHandler.ChangeStatus)
	projects.Get("/:id/comments", projectHandler.ListComments)
	projects.Post("/:id/comments", projectHandler.AddComment)
	projects.Get("/:id/inquiries", inquiryHandler.ListByProject)
	projects.Post("/:id/inquiries", inquiryHandler.Quote)
	projects.Get("/:id/inquiries/export", inquiryHandler.Export)

	// Cotizaciones
	inquiries := protected.Group("/inquiries")
	inquiries.Get("/pending", adminOnly, inquiryHandler.ListPending)
	inquiries.Get("/:id", inquiryHandler.Get)
	inquiries.Post("/:id/approve", adminOnly, inquiryHandler.Approve)
	inquiries.Post("/:id/reject", adminOnly, inquiryHandler.Reject)
	inquiries.Get("/:id/pdf", inquiryHandler.PDF)
	inquiries.Post("/:id/pdf/archive", inquiryHandler.ArchivePDF)
}
