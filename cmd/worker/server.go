package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"fishtrade-backend/internal/shared"
)

// asynqServer wraps asynq.Server with a bounded shutdown.
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueCritical: 20,
				shared.QueueDefault:  10,
				shared.QueueLow:      5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] ❌ Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// enqueueSeedTask queues one inventory seed run at startup.
func enqueueSeedTask(cfg *Config) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer client.Close()

	payload, err := json.Marshal(shared.InventorySeedPayload{RequestedBy: "worker-startup"})
	if err != nil {
		log.Printf("[Worker] ⚠️ Failed to marshal seed payload: %v", err)
		return
	}

	task := asynq.NewTask(shared.TypeInventorySeed, payload)
	if _, err := client.Enqueue(task, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(3)); err != nil {
		log.Printf("[Worker] ⚠️ Failed to enqueue inventory seed: %v", err)
		return
	}
	log.Println("[Worker] ✓ Inventory seed task enqueued")
}

// Shutdown drains in-flight tasks, waiting at most 30 seconds.
func (s *asynqServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("[Worker] Shutting down (waiting max 30s)...")
	s.Server.Shutdown()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			log.Println("[Worker] ⚠️ Shutdown timeout exceeded")
		}
	default:
		log.Println("[Worker] ✓ Gracefully stopped")
	}
}
