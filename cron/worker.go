package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"salonbook/config"
	lockRepo "salonbook/database/repository/lock"
	"salonbook/services/booking"

	"github.com/hibiken/asynq"
)

// Task types handled by the background worker.
const (
	TypeLockSweep = "locks:sweep"
	TypeResync    = "availability:resync"
)

// resyncPayload carries the vendor whose availability needs repairing.
type resyncPayload struct {
	VendorID string `json:"vendorId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// TaskClient enqueues background tasks. It satisfies the resync retry hook
// used by the availability cascade.
type TaskClient struct {
	client *asynq.Client
}

// NewTaskClient builds a client over the queue Redis database.
func NewTaskClient() *TaskClient {
	return &TaskClient{client: asynq.NewClient(redisOpts())}
}

// EnqueueResync schedules a deferred full resync for one vendor. Retries are
// left to asynq.
func (tc *TaskClient) EnqueueResync(vendorID string) error {
	payload, err := json.Marshal(resyncPayload{VendorID: vendorID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeResync, payload)
	_, err = tc.client.Enqueue(task,
		asynq.ProcessIn(30*time.Second),
		asynq.MaxRetry(5),
		asynq.Unique(10*time.Minute))
	return err
}

// Close releases the underlying queue connection.
func (tc *TaskClient) Close() error {
	return tc.client.Close()
}

// InitWorker starts the background worker and the periodic scheduler. The
// worker sweeps expired slot locks and replays failed availability cascades.
func InitWorker(locks lockRepo.Repository, sync booking.AvailabilitySync) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeLockSweep, handleLockSweep(locks))
	mux.HandleFunc(TypeResync, handleResync(sync))

	go startScheduler()

	go func() {
		log.Println("[Worker] starting background worker...")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// startScheduler registers the periodic lock sweep. Expired locks are also
// ignored by live reads, so the sweep only reclaims storage.
func startScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)
	if _, err := scheduler.Register("*/5 * * * *", asynq.NewTask(TypeLockSweep, nil)); err != nil {
		log.Printf("[Worker] failed to register lock sweep schedule: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] scheduler stopped: %v", err)
	}
}

func handleLockSweep(locks lockRepo.Repository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		removed, err := locks.DeleteExpired(ctx)
		if err != nil {
			log.Printf("[LockSweep] sweep failed: %v", err)
			return err
		}
		if removed > 0 {
			log.Printf("[LockSweep] removed %d expired locks", removed)
		}
		return nil
	}
}

func handleResync(sync booking.AvailabilitySync) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p resyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[Resync] invalid payload: %v", err)
			return err
		}
		if err := sync.Resync(ctx, p.VendorID); err != nil {
			log.Printf("[Resync] vendor %s resync failed: %v", p.VendorID, err)
			return err
		}
		log.Printf("[Resync] vendor %s availability repaired", p.VendorID)
		return nil
	}
}
