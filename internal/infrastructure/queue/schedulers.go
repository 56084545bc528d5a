package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"fishtrade-backend/internal/config"
	"fishtrade-backend/internal/shared"
	"fishtrade-backend/pkg/logger"
)

// Scheduler registers the recurring worker jobs with asynq.
type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs wires every cron entry. Called once before Start.
func (s *Scheduler) RegisterJobs() error {
	return s.registerLowStockScanJob()
}

// Low stock scan: hourly sweep of the inventory, publishing an alert
// event for the admin dashboard when something runs short.
func (s *Scheduler) registerLowStockScanJob() error {
	payload, err := json.Marshal(shared.LowStockScanPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeLowStockScan, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.LowStockScanSpec,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register LowStockScan job", err)
		return err
	}

	logger.Info("✓ Registered LowStockScan", map[string]interface{}{
		"spec": s.jobConfig.LowStockScanSpec,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
