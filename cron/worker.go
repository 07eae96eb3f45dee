package cron

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"tillpoint/config"
	"tillpoint/services/subscription"
	"tillpoint/utils"
)

const TypeSubscriptionSweep = "subscription:sweep"

// InitSubscriptionWorker runs the async worker and schedules the periodic
// subscription sweep in the background.
func InitSubscriptionWorker(subSvc subscription.SubscriptionService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSubscriptionSweep, handleSweepTask(subSvc))

	go monitorRedisConnection()

	go func() {
		log.Println("[SubscriptionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SubscriptionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SubscriptionWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the sweep task on the configured interval.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})

	spec := config.AppConfig.SubscriptionSweepSpec
	if spec == "" {
		spec = "@every 1h"
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeSubscriptionSweep, nil)); err != nil {
		log.Fatalf("[SubscriptionWorker] failed to register sweep schedule: %v", err)
	}

	if err := scheduler.Run(); err != nil {
		log.Fatalf("[SubscriptionWorker] scheduler stopped: %v", err)
	}
}

func handleSweepTask(subSvc subscription.SubscriptionService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		changed, err := subSvc.Sweep()
		if err != nil {
			utils.GetLogger().Error("subscription sweep failed", zap.Error(err))
			return err
		}
		utils.GetLogger().Info("subscription sweep finished", zap.Int("transitions", changed))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SubscriptionWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
