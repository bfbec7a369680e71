package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/library-api/internal/audit"
	"github.com/BruksfildServices01/library-api/internal/config"
	"github.com/BruksfildServices01/library-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/library-api/internal/infra/repository"
	"github.com/BruksfildServices01/library-api/internal/middleware"
	ucClient "github.com/BruksfildServices01/library-api/internal/usecase/client"
)

type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         hclog.Logger
	Audit       *audit.Dispatcher
	LoginLimits *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES — CLIENTS
	// ======================================================
	createClientUC := ucClient.NewCreateClient(clientRepo, d.Audit)
	getClientUC := ucClient.NewGetClientByCPF(clientRepo)
	listClientsUC := ucClient.NewListClients(clientRepo)
	editClientUC := ucClient.NewEditClient(clientRepo, d.Audit)
	deleteClientUC := ucClient.NewDeleteClient(clientRepo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Log.Named("auth"))
	meHandler := handlers.NewMeHandler(d.DB)

	clientHandler := handlers.NewClientHandler(
		createClientUC,
		getClientUC,
		listClientsUC,
		editClientUC,
		deleteClientUC,
		d.Log.Named("clients"),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.Log.Named("audit"))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// 🔐 USERS
		// ------------------------------
		api.POST("/users/register", authHandler.Register)
		api.POST("/users/login", d.LoginLimits.Middleware(), authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/users/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.POST("/clients/register", clientHandler.Create)
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:cpf", clientHandler.GetByCPF)
			secured.PUT("/clients/cpf/:cpf", clientHandler.Edit)
			secured.DELETE("/clients/cpf/:cpf", clientHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
