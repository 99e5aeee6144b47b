package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/vilkasoft/backoffice/internal/auth"
	"github.com/vilkasoft/backoffice/internal/destination"
	"github.com/vilkasoft/backoffice/internal/driver"
	"github.com/vilkasoft/backoffice/internal/rbac"
	"github.com/vilkasoft/backoffice/internal/transport/middleware"
	"github.com/vilkasoft/backoffice/internal/transport/swagger"
	"github.com/vilkasoft/backoffice/internal/trip"
	"github.com/vilkasoft/backoffice/internal/user"
	"github.com/vilkasoft/backoffice/internal/vehicle"
)

// Handlers carries every HTTP handler the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	RBAC        *rbac.Handler
	Vehicle     *vehicle.Handler
	Driver      *driver.Handler
	Destination *destination.Handler
	Trip        *trip.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	authz := auth.NewRBACAuthorization(logger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
			}

			if h.RBAC != nil {
				pr.Group(func(rr chi.Router) {
					rr.Use(authz.Require("roles.view"))
					rr.Get("/roles", h.RBAC.GetRoles)
					rr.Get("/roles/{id}/permissions", h.RBAC.GetRolePermissions)
					rr.Get("/permissions", h.RBAC.GetPermissions)
				})
				pr.Group(func(rr chi.Router) {
					rr.Use(authz.Require("roles.manage"))
					rr.Post("/roles", h.RBAC.CreateRole)
					rr.Patch("/roles/{id}", h.RBAC.UpdateRole)
					rr.Delete("/roles/{id}", h.RBAC.DeleteRole)
				})
			}

			if h.Vehicle != nil {
				pr.Group(func(vr chi.Router) {
					vr.Use(authz.Require("transport.vehicles"))
					vr.Route("/vehicles", func(sr chi.Router) {
						sr.Get("/", h.Vehicle.GetVehicles)
						sr.Post("/", h.Vehicle.CreateVehicle)
						sr.Get("/{id}", h.Vehicle.GetVehicle)
						sr.Patch("/{id}", h.Vehicle.UpdateVehicle)
						sr.Delete("/{id}", h.Vehicle.DeleteVehicle)
						sr.Get("/{id}/fuel", h.Vehicle.GetFuelRecords)
						sr.Post("/{id}/fuel", h.Vehicle.AddFuelRecord)
					})
				})
			}

			if h.Driver != nil {
				pr.Group(func(dr chi.Router) {
					dr.Use(authz.Require("transport.drivers"))
					dr.Route("/drivers", func(sr chi.Router) {
						sr.Get("/", h.Driver.GetDrivers)
						sr.Post("/", h.Driver.CreateDriver)
						sr.Patch("/{id}", h.Driver.UpdateDriver)
						sr.Delete("/{id}", h.Driver.DeleteDriver)
					})
				})
			}

			if h.Destination != nil {
				pr.Group(func(dr chi.Router) {
					dr.Use(authz.Require("transport.destinations"))
					dr.Route("/destinations", func(sr chi.Router) {
						sr.Get("/", h.Destination.GetDestinations)
						sr.Post("/", h.Destination.CreateDestination)
						sr.Patch("/{id}", h.Destination.UpdateDestination)
						sr.Delete("/{id}", h.Destination.DeleteDestination)
					})
				})
			}

			if h.Trip != nil {
				pr.Group(func(tr chi.Router) {
					tr.Use(authz.Require("transport.trips"))
					tr.Post("/trips/generate", h.Trip.GenerateLog)
					tr.Route("/trips/logs", func(sr chi.Router) {
						sr.Post("/", h.Trip.SaveLog)
						sr.Get("/", h.Trip.GetLog)
						sr.Delete("/", h.Trip.DeleteLog)
					})
				})
			}
		})
	})
}
