package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"fdrs/internal/blob"
	"fdrs/internal/config"
	"fdrs/internal/database"
	"fdrs/internal/mailer"
	"fdrs/internal/middleware"
	"fdrs/internal/modules/auth"
	"fdrs/internal/modules/catalog"
	"fdrs/internal/modules/comment"
	"fdrs/internal/modules/favorite"
	"fdrs/internal/modules/moderation"
	jwtsvc "fdrs/internal/pkg/jwt"
	"fdrs/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	blobStore := blob.NewDiskStore(cfg.UploadDir)

	var mail mailer.Mailer = mailer.Nop{}
	if cfg.MailAPIKey != "" && cfg.MailSenderAddr != "" {
		mail = mailer.NewHTTPMailer(mailer.Config{
			APIURL:     cfg.MailAPIURL,
			APIKey:     cfg.MailAPIKey,
			SenderName: cfg.MailSenderName,
			SenderAddr: cfg.MailSenderAddr,
		})
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, resourceRepo, favoriteRepo, j)
	authHandler := auth.NewHandler(authService)

	moderationService := moderation.NewService(
		resourceRepo,
		commentRepo,
		favoriteRepo,
		userRepo,
		facultyRepo,
		blobStore,
		mail,
	)
	moderationHandler := moderation.NewHandler(moderationService)

	catalogService := catalog.NewService(resourceRepo, commentRepo, facultyRepo, blobStore)
	catalogHandler := catalog.NewHandler(catalogService)

	commentHandler := comment.NewHandler(commentRepo, resourceRepo)
	favoriteHandler := favorite.NewHandler(favoriteRepo, resourceRepo)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.AuthRequired(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			moderationHandler.RegisterRoutes(protected)
			commentHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
		}

		// admin
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(j), middleware.AdminOnly())
		{
			moderationHandler.RegisterAdminRoutes(admin)
			catalogHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
