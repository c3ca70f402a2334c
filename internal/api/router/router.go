package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/config"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/api/handler"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/api/middleware"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/jwt"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/redis"
)

const (
	maxBodyBytes = 1 << 20 // request bodies above 1 MiB are rejected

	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth endpoints reachable without a token
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// account management, admin only
			users := authorized.Group("/users", middleware.RoleAuth("admin"))
			{
				users.GET("", h.User.ListUsers)
				users.POST("", h.User.CreateUser)
				users.GET("/:id", h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
				users.PUT("/:id/blocco", h.User.SetBlocco)
				users.POST("/:id/reset-password", h.User.ResetPassword)
				users.PUT("/:id/cantieri", h.User.AssegnaCantieri)
				users.PUT("/:id/mezzi", h.User.AssegnaMezzi)
			}

			// job sites: anyone reads, admins write
			cantieri := authorized.Group("/cantieri")
			{
				cantieri.GET("", h.Cantiere.ListCantieri)
				cantieri.GET("/:id", h.Cantiere.GetCantiere)
				cantieri.POST("", middleware.RoleAuth("admin"), h.Cantiere.CreateCantiere)
				cantieri.PUT("/:id", middleware.RoleAuth("admin"), h.Cantiere.UpdateCantiere)
				cantieri.DELETE("/:id", middleware.RoleAuth("admin"), h.Cantiere.DeleteCantiere)
			}

			// vehicles
			mezzi := authorized.Group("/mezzi")
			{
				mezzi.GET("", h.Mezzo.ListMezzi)
				mezzi.GET("/:id", h.Mezzo.GetMezzo)
				mezzi.POST("", middleware.RoleAuth("admin"), h.Mezzo.CreateMezzo)
				mezzi.PUT("/:id", middleware.RoleAuth("admin"), h.Mezzo.UpdateMezzo)
				mezzi.DELETE("/:id", middleware.RoleAuth("admin"), h.Mezzo.DeleteMezzo)
			}

			// equipment
			attrezzature := authorized.Group("/attrezzature")
			{
				attrezzature.GET("", h.Attrezzatura.ListAttrezzature)
				attrezzature.GET("/:id", h.Attrezzatura.GetAttrezzatura)
				attrezzature.POST("", middleware.RoleAuth("admin"), h.Attrezzatura.CreateAttrezzatura)
				attrezzature.PUT("/:id", middleware.RoleAuth("admin"), h.Attrezzatura.UpdateAttrezzatura)
				attrezzature.DELETE("/:id", middleware.RoleAuth("admin"), h.Attrezzatura.DeleteAttrezzatura)
			}

			// work days and their children
			attivita := authorized.Group("/attivita")
			{
				attivita.GET("", middleware.RoleAuth("admin"), h.Attivita.ListAttivita)
				attivita.GET("/me", h.Attivita.ListMyAttivita)
				attivita.GET("/me/calendario.ics", h.Report.GetCalendar)
				attivita.POST("", h.Attivita.CreateAttivita)
				attivita.GET("/external/:externalId", h.Attivita.GetAttivitaByExternalID)
				attivita.GET("/:id", h.Attivita.GetAttivita)
				attivita.PUT("/:id", h.Attivita.UpdateAttivita)
				attivita.DELETE("/:id", h.Attivita.DeleteAttivita)
				attivita.PUT("/:id/verifica", middleware.RoleAuth("admin"), h.Attivita.VerifyAttivita)

				attivita.POST("/:id/interazioni", h.Attivita.CreateInterazione)
				attivita.PUT("/:id/interazioni", h.Attivita.ReplaceInterazioni)
				attivita.PUT("/:id/interazioni/:childId", h.Attivita.UpdateInterazione)
				attivita.DELETE("/:id/interazioni/:childId", h.Attivita.DeleteInterazione)

				attivita.POST("/:id/trasporti", h.Attivita.CreateTrasporto)
				attivita.PUT("/:id/trasporti/:childId", h.Attivita.UpdateTrasporto)
				attivita.DELETE("/:id/trasporti/:childId", h.Attivita.DeleteTrasporto)

				attivita.POST("/:id/assenze", h.Attivita.CreateAssenza)
				attivita.PUT("/:id/assenze/:childId", h.Attivita.UpdateAssenza)
				attivita.DELETE("/:id/assenze/:childId", h.Attivita.DeleteAssenza)
			}

			// reporting, admin only
			report := authorized.Group("/report", middleware.RoleAuth("admin"))
			{
				report.GET("", h.Report.GetReport)
				report.GET("/export", h.Report.ExportReport)
			}
		}
	}

	return r
}
