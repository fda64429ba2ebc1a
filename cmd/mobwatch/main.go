// Command mobwatch is a headless observer: it mirrors every mob served by a
// mobserver tracker and periodically logs the resolved motion and aim pitch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/mobpatch/internal/config"
	"github.com/udisondev/mobpatch/internal/crypto"
	"github.com/udisondev/mobpatch/internal/mirror"
	"github.com/udisondev/mobpatch/internal/patch"
)

func main() {
	defaults := config.DefaultServer().Tracker
	addr := flag.String("addr", fmt.Sprintf("127.0.0.1:%d", defaults.Port), "tracker address")
	key := flag.String("key", defaults.SessionKey, "hex session key")
	every := flag.Duration("every", time.Second, "report interval")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *addr, *key, *every); err != nil {
		reportFatal(slog.Default(), err)
		os.Exit(1)
	}
}

// reportFatal logs the error that stops the process.
func reportFatal(logger *slog.Logger, err error) {
	logger.Error("fatal", "error", err)
}

func run(ctx context.Context, addr, keyHex string, every time.Duration) error {
	key, err := crypto.ParseSessionKey(keyHex)
	if err != nil {
		return err
	}

	m := mirror.New()
	client, err := mirror.Dial(ctx, addr, key, m)
	if err != nil {
		return err
	}
	defer client.Close()
	slog.Info("connected to tracker", "addr", addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				report(m)
			}
		}
	})
	return g.Wait()
}

func report(m *mirror.Mirror) {
	m.World().ForEachMob(func(p *patch.MobPatch) bool {
		f, ok := m.Frame(p.Mob().ObjectID(), patch.FixedFrame(1))
		if !ok {
			return true
		}
		slog.Info("mob",
			"objectID", p.Mob().ObjectID(),
			"name", p.Mob().Name(),
			"faction", p.Faction(),
			"motion", f.Motion.Primary,
			"composite", f.Motion.Composite,
			"targetID", f.TargetID,
			"pitch", f.Pitch,
			"clip", f.Base.Name)
		return true
	})
}
