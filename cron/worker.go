package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skiply/config"
	"skiply/services/tasks"
	"skiply/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sweeper cancels bookings left open from earlier days.
type Sweeper interface {
	ExpireStaleBookings(ctx context.Context) (int64, error)
}

// SweepWorker owns the asynq scheduler that enqueues the end-of-day sweep and
// the server that runs it.
type SweepWorker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitSweepWorker registers the sweep on SWEEP_CRON and starts processing in
// the background.
func InitSweepWorker(sweeper Sweeper) (*SweepWorker, error) {
	logger := utils.GetLogger()
	opts := redisOpts()

	scheduler := asynq.NewScheduler(opts, &asynq.SchedulerOpts{Location: config.QueueLocation()})
	task, err := tasks.NewExpireStaleTask("scheduler", time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build sweep task: %w", err)
	}
	entryID, err := scheduler.Register(config.AppConfig.SweepCron, task)
	if err != nil {
		return nil, fmt.Errorf("failed to register sweep %q: %w", config.AppConfig.SweepCron, err)
	}

	server := asynq.NewServer(opts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExpireStaleBookings, handleExpireStaleTask(sweeper))

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := server.Start(mux)
			if err == nil {
				logger.Info("Sweep worker started", zap.String("entryId", entryID), zap.String("cron", config.AppConfig.SweepCron))
				return
			}
			logger.Warn("Sweep worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		logger.Error("Sweep worker gave up starting; stale bookings will not expire automatically")
	}()

	if err := scheduler.Start(); err != nil {
		server.Shutdown()
		return nil, fmt.Errorf("failed to start sweep scheduler: %w", err)
	}
	return &SweepWorker{scheduler: scheduler, server: server}, nil
}

// Shutdown stops scheduling and waits for a running sweep to finish.
func (w *SweepWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleExpireStaleTask(sweeper Sweeper) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ExpireStalePayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &p); err != nil {
				logger.Error("Invalid sweep payload", zap.Error(err))
				return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
			}
		}

		n, err := sweeper.ExpireStaleBookings(ctx)
		if err != nil {
			logger.Error("Sweep failed", zap.String("source", p.Source), zap.Error(err))
			return err
		}
		logger.Info("Sweep finished", zap.String("source", p.Source), zap.Int64("expired", n))
		return nil
	}
}
