package config

import (
	"Lost-Found-Registry/internal/api/handlers"
	"Lost-Found-Registry/internal/api/routes"
	"Lost-Found-Registry/internal/middleware"
	"Lost-Found-Registry/internal/utils"
	"Lost-Found-Registry/internal/utils/mailing"
	"Lost-Found-Registry/internal/utils/storage"
	"Lost-Found-Registry/pkg/admin"
	"Lost-Found-Registry/pkg/claim"
	"Lost-Found-Registry/pkg/item"
	"Lost-Found-Registry/pkg/jwt"
	"Lost-Found-Registry/pkg/qr"
	"Lost-Found-Registry/pkg/token"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const (
	defaultRateLimit  = 10
	defaultUploadsDir = "./uploads"
	maxBodySize       = 20 * 1024 * 1024
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	return NewAppWithMailer(db, mailing.NewMailer(mailing.LoadMailConfig()))
}

// NewAppWithMailer builds the application with the given mail transport.
func NewAppWithMailer(db *gorm.DB, mailer mailing.Mailer) (*fiber.App, error) {
	jwtService, err := jwt.NewJWTService()
	if err != nil {
		return nil, err
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: maxBodySize,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	logWriter, err := utils.NewLogWriter()
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     logWriter,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT", defaultRateLimit),
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	itemRepository := item.NewItemRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	itemService := item.NewItemService(itemRepository, s3)
	adminService := admin.NewAdminService(adminRepository, jwtService)
	claimService := claim.NewClaimService(
		itemRepository,
		token.NewCodec(utils.GetConfig("TOKEN_SECRET")),
		qr.NewGenerator(),
		qr.NewReader(),
		mailer,
		utils.GetConfigOr("UPLOADS_DIR", defaultUploadsDir),
	)

	// Handler
	itemHandler := handlers.NewItemHandler(itemService, validator)
	claimHandler := handlers.NewClaimHandler(claimService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, validator)

	// routes
	routesConfig := routes.Config{
		App:          app,
		ItemHandler:  itemHandler,
		ClaimHandler: claimHandler,
		AdminHandler: adminHandler,
		Middleware:   middlewares,
		JWTService:   jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
