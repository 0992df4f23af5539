package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/goaltrack/internal/blob"
	"github.com/iliyamo/goaltrack/internal/config"
	"github.com/iliyamo/goaltrack/internal/handler"
	"github.com/iliyamo/goaltrack/internal/model"
	"github.com/iliyamo/goaltrack/internal/notify"
	"github.com/iliyamo/goaltrack/internal/queue"
	"github.com/iliyamo/goaltrack/internal/router"
	queue_publisher "github.com/iliyamo/goaltrack/internal/service"
	"github.com/iliyamo/goaltrack/internal/store"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs
	cfg := config.Load()

	var rdb *redis.Client
	var bs blob.Store
	switch cfg.BlobDriver {
	case "redis":
		rdb = config.NewRedisClient()
		if rdb == nil {
			log.Fatal("BLOB_DRIVER=redis but redis is unreachable")
		}
		bs = blob.NewRedis(rdb)
	case "mysql":
		m, err := blob.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open mysql blob store: %v", err)
		}
		bs = m
		rdb = config.NewRedisClient() // rate limiter only; nil disables it
	default:
		log.Printf("using in-memory blob store (driver %q); data will not survive restarts", cfg.BlobDriver)
		bs = blob.NewMemory()
	}

	st := store.New(bs)

	sender := notify.NewTelegramSender(cfg.TelegramAPIBase, st.TelegramToken)
	go func() {
		err := queue.StartNotifyConsumer(func(ev queue.TaskNotificationEvent) bool {
			text := notify.BuildTaskMessage(eventTopic(ev), ev.Kind)
			return sender.Send(context.Background(), ev.ChatID, text)
		})
		log.Printf("notify consumer stopped: %v", err)
	}()

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, st),
		Topics:      handler.NewTopicHandler(st, queue_publisher.PublishTaskNotification),
		Followups:   handler.NewFollowupHandler(st),
		Departments: handler.NewDepartmentHandler(st),
		Users:       handler.NewUserHandler(st),
		System:      handler.NewSystemHandler(cfg, st),
		Settings:    handler.NewSettingsHandler(st),
	}

	e := echo.New()
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, blob=%s)", addr, cfg.Env, cfg.BlobDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// eventTopic rebuilds the topic fields carried by a notification event
// for the message template.
func eventTopic(ev queue.TaskNotificationEvent) model.Topic {
	return model.Topic{
		ID:       ev.TopicID,
		Title:    ev.Title,
		Type:     ev.Type,
		Priority: model.PriorityLevel(ev.Priority),
		Sender:   ev.Sender,
		DueDate:  ev.DueDate,
		Details:  ev.Details,
	}
}
