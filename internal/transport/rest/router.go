package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/mindgraphix/platform/internal/auth"
	"github.com/mindgraphix/platform/internal/catalog"
	"github.com/mindgraphix/platform/internal/contact"
	"github.com/mindgraphix/platform/internal/project"
	"github.com/mindgraphix/platform/internal/transport/middleware"
	"github.com/mindgraphix/platform/internal/user"
)

type RouterDeps struct {
	DB             *sql.DB
	AuthHandler    *auth.Handler
	Gate           *auth.Gate
	UserHandler    *user.Handler
	ProjectHandler *project.Handler
	CatalogHandler *catalog.Handler
	ContactHandler *contact.Handler
	AllowedOrigins string
	Logger         *slog.Logger
}

// RegisterAllRoutes mounts the whole API surface on the given router. Reads
// on the public catalog (projects, services) and the contact form need no
// token; everything touching identities, roles or stored messages goes
// through the authorization gate.
func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/token", deps.AuthHandler.Login)
				sr.Post("/refresh", deps.AuthHandler.RefreshToken)
				sr.Post("/register", deps.AuthHandler.Register)
				sr.Get("/users/me", deps.AuthHandler.Me)
			})

			r.Route("/roles", func(sr chi.Router) {
				sr.With(deps.Gate.Guard(auth.Require("view_roles"))).
					Get("/", deps.AuthHandler.ListRoles)
				sr.With(deps.Gate.Guard(auth.Require("manage_roles"))).
					Post("/", deps.AuthHandler.CreateRole)
				sr.With(deps.Gate.Guard(auth.Require("manage_roles"))).
					Post("/{role_id}/permissions/{permission_id}", deps.AuthHandler.AddPermissionToRole)
			})

			r.Route("/permissions", func(sr chi.Router) {
				sr.With(deps.Gate.Guard(auth.Require("view_permissions"))).
					Get("/", deps.AuthHandler.ListPermissions)
				sr.With(deps.Gate.Guard(auth.Require("manage_permissions"))).
					Post("/", deps.AuthHandler.CreatePermission)
			})
		}

		if deps.UserHandler != nil {
			r.Route("/users", func(sr chi.Router) {
				sr.With(deps.Gate.Guard(auth.Require("view_users"))).
					Get("/", deps.UserHandler.ListUsers)
				sr.With(deps.Gate.Guard(auth.Require("view_users"))).
					Get("/{user_id}", deps.UserHandler.GetUser)
				sr.With(deps.Gate.Guard(auth.Require("manage_users"))).
					Post("/profiles", deps.UserHandler.CreateProfile)
				sr.With(deps.Gate.Guard(auth.Require("manage_users"))).
					Put("/{user_id}", deps.UserHandler.UpdateUser)
				sr.With(deps.Gate.Guard(auth.Require("manage_users"))).
					Delete("/{user_id}", deps.UserHandler.DeleteUser)
				sr.With(deps.Gate.Guard(auth.Require("manage_users"))).
					Post("/{user_id}/roles/{role_id}", deps.AuthHandler.AddRoleToUser)
			})
		}

		if deps.ProjectHandler != nil {
			r.Route("/projects", func(sr chi.Router) {
				sr.Get("/", deps.ProjectHandler.ListProjects)
				sr.Get("/{id}", deps.ProjectHandler.GetProject)
				sr.With(deps.Gate.Guard(auth.Require("manage_projects"))).
					Post("/", deps.ProjectHandler.CreateProject)
			})
		}

		if deps.CatalogHandler != nil {
			r.Route("/services", func(sr chi.Router) {
				sr.Get("/", deps.CatalogHandler.ListOfferings)
				sr.Get("/{id}", deps.CatalogHandler.GetOffering)
				sr.With(deps.Gate.Guard(auth.Require("manage_services"))).
					Post("/", deps.CatalogHandler.CreateOffering)
			})
		}

		if deps.ContactHandler != nil {
			r.Route("/contacts", func(sr chi.Router) {
				sr.Post("/", deps.ContactHandler.SubmitMessage)
				sr.With(deps.Gate.Guard(auth.Require("view_contacts"))).
					Get("/", deps.ContactHandler.ListMessages)
				sr.With(deps.Gate.Guard(auth.Require("view_contacts"))).
					Get("/{id}", deps.ContactHandler.GetMessage)
			})
		}
	})
}
