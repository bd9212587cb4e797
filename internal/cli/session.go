// Package cli holds the carprice subcommands.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/checkfox/go_carprice/internal/client"
	"github.com/checkfox/go_carprice/internal/config"
	"github.com/checkfox/go_carprice/internal/logger"
)

// isInteractive reports whether prompts can be shown on in
var isInteractive = func(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newActivationContext tags ctx with a fresh correlation id. Every log line of
// one screen activation shares it.
func newActivationContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, logger.CorrelationIDKey, uuid.New().String())
}

func newAPIClient(cfg *config.Config) *client.PredictionAPIClient {
	return client.NewPredictionAPIClient(client.ClientConfig{
		BaseURL:        cfg.BaseURL(),
		OptionsTimeout: cfg.Backend.OptionsTimeout,
		PredictTimeout: cfg.Backend.PredictTimeout,
	})
}
