package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tarefas/config"
	"tarefas/controller/auth"
	"tarefas/controller/dashboard"
	"tarefas/controller/home"
	"tarefas/controller/task"
	"tarefas/middleware"
	"tarefas/services"
	"tarefas/views"
)

// Dependencies are the collaborators the router needs.
type Dependencies struct {
	Store    services.Store
	Sessions *services.SessionService
	Verifier services.IdentityVerifier // nil in dev auth mode
}

// NewRouter builds the gin engine with every page and action registered.
func NewRouter(cfg *config.Config, deps Dependencies, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.Use(cors.Default())
	router.Use(middleware.SessionMiddleware(deps.Sessions))

	router.StaticFS("/static", http.FS(views.Static()))

	home.HomeController(router, deps.Store, cfg.Auth.Mode, views.FirebaseWeb{
		APIKey:     cfg.Firebase.APIKey,
		AuthDomain: cfg.Firebase.AuthDomain,
		ProjectID:  cfg.Firebase.ProjectID,
	})
	auth.SignOutController(router)
	switch cfg.Auth.Mode {
	case config.AuthModeDev:
		auth.DevSignInController(router, deps.Sessions)
	default:
		auth.GoogleSignInController(router, deps.Verifier, deps.Sessions)
	}
	dashboard.DashboardController(router, deps.Store, cfg.Server.PublicURL)
	task.TaskController(router, deps.Store, deps.Store)

	return router
}

// StartServer wires the configured store and identity provider, then serves
// until the process is interrupted.
func StartServer(cfg *config.Config) error {
	gin.SetMode(cfg.Server.GinMode)
	logger := SetupLogger(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if cfg.NeedsFirebase() {
		var err error
		if app, err = FBConnection(ctx, cfg.Firebase); err != nil {
			return err
		}
	}

	store, err := OpenStore(ctx, cfg.Store, app)
	if err != nil {
		return err
	}
	defer store.Close()

	deps := Dependencies{
		Store:    store,
		Sessions: services.NewSessionService(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL),
	}
	if cfg.Auth.Mode == config.AuthModeFirebase {
		authClient, err := app.Auth(ctx)
		if err != nil {
			return fmt.Errorf("get firebase auth client: %w", err)
		}
		deps.Verifier = services.NewFirebaseIdentityVerifier(authClient)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           NewRouter(cfg, deps, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store.Driver, "auth", cfg.Auth.Mode)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
