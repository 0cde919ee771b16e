package currency

import (
	"context"
	"fmt"
	"sync"
	"time"

	"currencyconv/internal/adapters"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CacheWarmer periodically loads every currency into the lookup cache so that
// conversions are served from memory and writes made by other instances show
// up within one interval.
type CacheWarmer struct {
	store    adapters.CurrencyStore
	cache    adapters.CurrencyCache
	log      logrus.FieldLogger
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (w *CacheWarmer) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if warmErr := WarmCache(jobCtx, execID, w.store, w.cache, w.log); warmErr != nil {
			w.log.Errorf("Warm cache job %s failed: %v", execID, warmErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	w.mu.Lock()
	w.sched = scheduler
	w.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := w.Shutdown(); sdErr != nil {
			w.log.Errorf("Cache warmer shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler. It is safe to call more than once.
func (w *CacheWarmer) Shutdown() error {
	w.mu.Lock()
	sched := w.sched
	w.sched = nil
	w.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (w *CacheWarmer) running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sched != nil
}

// WarmCache replaces the cache content with the current store content. A
// refresh that raced with a registry write is dropped, the next run retries.
func WarmCache(ctx context.Context, execID string, store adapters.CurrencyStore, cache adapters.CurrencyCache, log logrus.FieldLogger) error {
	gen := cache.Generation()
	all, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies: %w", err)
	}

	// entries of deleted or renamed currencies must not survive the refresh
	if !cache.Reset(gen, all) {
		log.WithField("exec_id", execID).Debug("currencies changed during warm up, refresh skipped")
		return nil
	}

	log.WithField("exec_id", execID).Debugf("%d currencies loaded into cache", len(all))
	return nil
}

func NewCacheWarmer(store adapters.CurrencyStore, cache adapters.CurrencyCache, logger logrus.FieldLogger, interval time.Duration) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{store: store, cache: cache, log: logger, interval: interval}
}
