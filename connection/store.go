package connection

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go"

	"tarefas/config"
	"tarefas/services"
)

// OpenStore connects the configured document store.
func OpenStore(ctx context.Context, cfg config.StoreConfig, app *firebase.App) (services.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := services.OpenSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("sqlite store ready", "path", cfg.SQLitePath)
		return store, nil
	case config.DriverFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("get firestore client: %w", err)
		}
		slog.Info("firestore connection successful")
		return services.NewFirestoreStore(client), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
