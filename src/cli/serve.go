package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"Backend-Schoolhub/src/config"
	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/routes"
	"Backend-Schoolhub/src/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(configPath *string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides APP_URI)")
	return cmd
}

func runServe(ctx context.Context, path, portFlag string) error {
	cfg, err := bootstrap(ctx, path)
	if err != nil {
		return err
	}
	defer shutdown()

	if err := database.EnsureIndexes(ctx, database.DB); err != nil {
		return err
	}
	database.InitAsynq()

	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	port := portFlag
	if port == "" {
		port = cfg.Server.Port
	}

	go func() {
		<-ctx.Done()
		logger.Log.Info("shutting down server...")
		_ = app.Shutdown()
	}()

	logger.Log.Info("Server is running", zap.String("port", port))
	return app.Listen(fmt.Sprintf(":%s", url.PathEscape(port)))
}

// newApp builds the fiber app with every route bound to live services.
func newApp(ctx context.Context, cfg *config.Config) (*fiber.App, error) {
	quizSvc, err := newQuizService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	authSvc := auth.NewService(auth.NewMongoAccounts(database.DB), database.RedisClient, cfg.JWTTTL())
	authCtl := controllers.NewAuthController(authSvc)
	if cfg.GoogleEnabled() {
		authCtl.WithGoogle(auth.NewGoogleLogin(authSvc, auth.GoogleOptions{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		}), cfg.Server.FrontendURL)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.MaxUploadBytes + 1<<20,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.Server.AllowedOrigins != "" && !strings.Contains(cfg.Server.AllowedOrigins, "*"),
	}))
	app.Use(middleware.RequestLogger)
	app.Use(middleware.Metrics)

	routes.InitRoutes(app, routes.Handlers{
		Auth:        authCtl,
		Quiz:        controllers.NewQuizController(quizSvc, cfg.Server.MaxUploadBytes).WithPublicURL(cfg.Server.PublicURL),
		Maintenance: controllers.NewMaintenanceController(quizSvc, database.AsynqClient, cfg.ArchiveRetention()),
	})
	return app, nil
}
