package connection

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"tarefas/config"
)

// FBConnection initializes the Firebase Admin app. Without a credentials file
// the application default credentials (or FIRESTORE_EMULATOR_HOST) apply.
func FBConnection(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	slog.Info("firebase app initialized", "project_id", cfg.ProjectID)
	return app, nil
}
