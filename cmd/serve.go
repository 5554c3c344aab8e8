package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/ai"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/domain"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/file"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/page"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/profile"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/site"
	"github.com/Builder-Lawyers/site-builder/internal/application/processors"
	"github.com/Builder-Lawyers/site-builder/internal/application/query"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	aiclient "github.com/Builder-Lawyers/site-builder/internal/infra/client/openai"
	"github.com/Builder-Lawyers/site-builder/internal/infra/config"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db"
	"github.com/Builder-Lawyers/site-builder/internal/infra/dns"
	"github.com/Builder-Lawyers/site-builder/internal/infra/metrics"
	"github.com/Builder-Lawyers/site-builder/internal/infra/storage"
	"github.com/Builder-Lawyers/site-builder/internal/presentation/rest"
	"github.com/Builder-Lawyers/site-builder/internal/presentation/scheduler"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API, the public renderer and the outbox poller",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func serve(ctx context.Context) error {
	serverConfig := config.NewServerConfig()

	// DB
	pool, err := dbs.NewPool(ctx, dbs.NewConfig())
	if err != nil {
		return err
	}
	defer pool.Close()
	if migrateOnStart {
		applied, err := db.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("err applying migrations, %w", err)
		}
		slog.Info("migrations applied", "count", applied)
	}
	uowFactory := dbs.NewUoWFactory(pool)

	// Configs
	dnsConfig := dns.NewDNSConfig()
	outboxConfig := scheduler.NewOutboxConfig()

	// AWS
	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("can't load aws config, %w", err)
	}
	s3 := storage.NewStorage(cfg, storage.NewStorageConfig())
	dnsProvisioner := dns.NewDNSProvisioner(cfg, dnsConfig)

	identityProvider, err := auth.NewIdentityProvider(ctx, auth.NewAuthConfig())
	if err != nil {
		return err
	}
	renderer, err := render.New()
	if err != nil {
		return err
	}
	aiClient := aiclient.NewOpenAIClient(aiclient.NewOpenAIConfig())

	handlers := &application.Handlers{
		CreateSite:    site.NewCreateSite(uowFactory, renderer),
		UpdateSite:    site.NewUpdateSite(uowFactory, renderer),
		DeleteSite:    site.NewDeleteSite(uowFactory),
		PublishSite:   site.NewPublishSite(uowFactory),
		UnpublishSite: site.NewUnpublishSite(uowFactory),
		UpdateProfile: profile.NewUpdateProfile(uowFactory),
		CreatePage:    page.NewCreatePage(uowFactory),
		SavePage:      page.NewSavePage(uowFactory),
		DeletePage:    page.NewDeletePage(uowFactory),
		SetPageStatus: page.NewSetPageStatus(uowFactory),
		AddDomain:     domain.NewAddDomain(uowFactory, dnsConfig.BaseDomain),
		VerifyDomain:  domain.NewVerifyDomain(uowFactory, dnsProvisioner, dnsConfig.EdgeTarget),
		SetDomain:     domain.NewSetDomainStatus(uowFactory),
		RemoveDomain:  domain.NewRemoveDomain(uowFactory),
		UploadFile:    file.NewUploadFile(uowFactory, s3, file.NewUploadConfig()),
		DeleteFile:    file.NewDeleteFile(uowFactory, s3),
		Generate:      ai.NewGenerateContent(uowFactory, aiClient),

		GetSite:      query.NewGetSite(uowFactory, s3, dnsConfig.BaseDomain),
		ListSites:    query.NewListSites(uowFactory, dnsConfig.BaseDomain),
		GetProfile:   query.NewGetProfile(uowFactory, s3),
		ListPages:    query.NewListPages(uowFactory),
		GetPage:      query.NewGetPage(uowFactory),
		ListDomains:  query.NewListDomains(uowFactory),
		CheckDomain:  query.NewCheckDomain(dnsProvisioner),
		ListAssets:   query.NewListAssets(uowFactory, s3),
		RenderPublic: query.NewRenderPublic(uowFactory, renderer, s3, dnsConfig.BaseDomain),
		PreviewPage:  query.NewPreviewPage(uowFactory, renderer, s3),
	}
	removeSnapshot := processors.NewRemoveSnapshot(uowFactory, s3, dnsProvisioner)
	procs := &application.Processors{
		PublishSnapshot: processors.NewPublishSnapshot(uowFactory, renderer, s3, dnsProvisioner),
		RemoveSnapshot:  removeSnapshot,
		PurgeSite:       processors.NewPurgeSite(removeSnapshot),
	}

	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		BodyLimit:    serverConfig.BodyLimit,
		ErrorHandler: rest.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     serverConfig.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("db unavailable")
		}
		return c.SendString("ok")
	})
	rest.RegisterHandlers(app.Group("/api"), rest.NewServer(handlers, renderer), rest.RequireIdentity(identityProvider))
	rest.NewPublic(handlers.RenderPublic).Register(app)

	var outboxPoller *scheduler.OutboxPoller
	if serverConfig.PollerEnabled {
		outboxPoller = scheduler.NewOutboxPoller(procs, uowFactory, outboxConfig)
		go outboxPoller.Start()
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(":" + serverConfig.Port)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case <-c:
		slog.Info("Gracefully shutting down...")
	case err = <-listenErr:
		slog.Error("server stopped", "err", err)
	}
	if errShutdown := app.ShutdownWithTimeout(serverConfig.ShutdownTimeout); errShutdown != nil {
		slog.Error("err shutting down server", "err", errShutdown)
	}
	if outboxPoller != nil {
		outboxPoller.Stop()
	}
	slog.Info("Fiber was successfully shutdown.")
	return err
}
