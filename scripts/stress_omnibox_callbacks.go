package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/omnibar/internal/application/usecase"
	"github.com/bnema/omnibar/internal/domain/autocomplete"
	"github.com/bnema/omnibar/internal/infrastructure/browser"
	"github.com/bnema/omnibar/internal/logging"
	"github.com/bnema/omnibar/internal/ui/component"
	"github.com/bnema/omnibar/internal/ui/dispatcher"
	"github.com/bnema/omnibar/internal/ui/input"
)

const (
	defaultIterations = 5000
	defaultTabs       = 6
)

type counters struct {
	events          atomic.Int64
	commits         atomic.Int64
	overrideChanges atomic.Int64
	renders         atomic.Int64
	browserEvents   atomic.Int64
	dispatchErrors  atomic.Int64
}

func main() {
	iterations := flag.Int("iterations", defaultIterations, "synthetic omnibox events per worker")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "concurrent event sources")
	tabs := flag.Int("tabs", defaultTabs, "tabs opened before the run")
	timeout := flag.Duration("timeout", 30*time.Second, "fail when the run takes longer (deadlock guard)")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger := logging.NewFromConfigValues(*level, "console")
	ctx := logging.WithContext(context.Background(), logger)
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	start := time.Now()
	c, err := run(ctx, *iterations, *workers, *tabs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stress run failed after %s: %v\n", time.Since(start).Round(time.Millisecond), err)
		os.Exit(1)
	}

	fmt.Printf("workers=%d iterations=%d elapsed=%s\n", *workers, *iterations, time.Since(start).Round(time.Millisecond))
	fmt.Printf("events=%d commits=%d override_changes=%d renders=%d browser_events=%d dispatch_errors=%d\n",
		c.events.Load(), c.commits.Load(), c.overrideChanges.Load(), c.renders.Load(), c.browserEvents.Load(), c.dispatchErrors.Load())
}

// run drives one controller from several goroutines. Observers call back
// into the controller, which deadlocks if they ever run under its lock.
func run(ctx context.Context, iterations, workers, tabCount int) (*counters, error) {
	b := browser.New(ctx)
	for i := range tabCount {
		b.OpenTab(ctx, fmt.Sprintf("https://site%d.example/", i), i == 0)
	}

	c := &counters{}
	unsubscribe := b.Subscribe(func(browser.Event) { c.browserEvents.Add(1) })
	defer unsubscribe()

	ctrl := component.NewActionOverrideController(ctx, component.ActionOverrideConfig{
		Enabled:    true,
		Modifier:   input.ModShift,
		Dispatcher: usecase.NewDispatchCommitUseCase(b, b, nil, "https://duckduckgo.com/?q=%s"),
	})
	ctrl.SetOnOverrideChange(func(bool) {
		c.overrideChanges.Add(1)
		_ = ctrl.State()
	})
	ctrl.SetOnRender(func(component.AffordanceVisibility) {
		c.renders.Add(1)
		_ = ctrl.IsOverriding()
	})

	keys := dispatcher.NewKeyboardDispatcher(ctx, ctrl)
	suggest := usecase.NewSuggestUseCase(b, nil, 0)
	if _, err := keys.Focus(ctx); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		g, gctx := errgroup.WithContext(ctx)
		for w := range workers {
			g.Go(func() error {
				rng := rand.New(rand.NewPCG(uint64(w), uint64(iterations)))
				for range iterations {
					if err := gctx.Err(); err != nil {
						return err
					}
					res, err := step(gctx, rng, keys, suggest)
					if err != nil {
						if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
							return err
						}
						// Racing workers can commit stale selections.
						c.dispatchErrors.Add(1)
					}
					c.events.Add(1)
					if res.Action != autocomplete.CommitNone {
						c.commits.Add(1)
					}
				}
				return nil
			})
		}
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		return c, err
	case <-ctx.Done():
		return c, fmt.Errorf("no progress: %w", ctx.Err())
	}
}

func step(ctx context.Context, rng *rand.Rand, keys *dispatcher.KeyboardDispatcher, suggest *usecase.SuggestUseCase) (component.Result, error) {
	switch rng.IntN(10) {
	case 0:
		return keys.Open(ctx, suggest.Suggest(ctx, ""))
	case 1:
		return keys.KeyDown(ctx, input.KeyShift)
	case 2:
		return keys.KeyUp(ctx, input.KeyShift)
	case 3:
		return keys.KeyDown(ctx, input.KeyArrowDown)
	case 4:
		return keys.KeyDown(ctx, input.KeyArrowUp)
	case 5:
		return keys.KeyDown(ctx, input.KeyEnter)
	case 6:
		return keys.Click(ctx, rng.IntN(4))
	case 7:
		return keys.Blur(ctx)
	case 8:
		return keys.Focus(ctx)
	default:
		return keys.Controller().HandleEvent(ctx, component.FeatureToggled(rng.IntN(4) != 0))
	}
}
