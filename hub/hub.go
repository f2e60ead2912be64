package hub

import (
	"context"
	"fmt"
	"io"

	"github.com/barryzzz/speller/config"
	"github.com/barryzzz/speller/hub/executor"
	"github.com/barryzzz/speller/hub/route"
	"github.com/barryzzz/speller/log"
)

// Parse runs the checker described by cfg, writes the statistics to out and,
// when an external controller is configured, serves it until ctx is done and
// shuts it down.
func Parse(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log.SetLevel(cfg.General.LogLevel)

	dict, stats, err := executor.Run(ctx, cfg.Input)
	if err != nil {
		return err
	}
	fmt.Fprint(out, stats.String())

	if cfg.General.ExternalController == "" {
		return nil
	}

	err = route.Start(ctx, cfg.General.ExternalController, cfg.General.Secret, route.NewStore(dict))
	if err != nil {
		return fmt.Errorf("external controller error: %w", err)
	}
	return nil
}
