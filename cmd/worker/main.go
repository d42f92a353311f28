package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dimasadyaksa/vidstream/config"
	app "github.com/dimasadyaksa/vidstream/internal/application"
	"github.com/dimasadyaksa/vidstream/pkg/mailer"
)

// Queue consumer: welcome emails go out via Mailgun, video.created events are
// indexed into Elasticsearch for /api/videos/search.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.RabbitMQURL == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	for _, q := range []string{cfg.RabbitMQEmailQueue, cfg.RabbitMQEventQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			log.Fatalf("queue declare %s: %v", q, err)
		}
	}

	emails, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume %s: %v", cfg.RabbitMQEmailQueue, err)
	}
	events, err := ch.Consume(cfg.RabbitMQEventQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume %s: %v", cfg.RabbitMQEventQueue, err)
	}

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		log.Println("mailgun not configured; email jobs will be dropped after logging")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.ESAddrs(),
		Username:  cfg.ElasticsearchUser,
		Password:  cfg.ElasticsearchPass,
	})
	if err != nil {
		log.Fatalf("elasticsearch client: %v", err)
	}

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for msg := range emails {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad email message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}
			if mg == nil {
				log.Printf("dropping email to %s (mailgun disabled)", job.To)
				_ = msg.Ack(false)
				continue
			}
			if err := mg.Send(ctx, job.To, job.Subject, job.Text, job.HTML); err != nil {
				log.Printf("send to %s failed: %v", job.To, err)
				_ = msg.Nack(false, true) // requeue for retry
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	go func() {
		for msg := range events {
			var ev app.VideoEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad event message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}
			if ev.Type != app.EventVideoCreated || ev.VideoID == "" {
				_ = msg.Ack(false)
				continue
			}
			if err := indexVideo(ctx, es, cfg.ESVideosIndex, ev); err != nil {
				log.Printf("index video %s failed: %v", ev.VideoID, err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	log.Println("worker started")
	<-stop
	log.Println("worker stopped")
}

func indexVideo(ctx context.Context, es *elasticsearch.Client, index string, ev app.VideoEvent) error {
	doc := map[string]any{
		"video_id":    ev.VideoID,
		"user_id":     ev.UserID,
		"title":       ev.Title,
		"description": ev.Description,
		"created_at":  ev.CreatedAt,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: index, DocumentID: ev.VideoID, Body: strings.NewReader(string(b)), Refresh: "false"}
	res, err := req.Do(ctx, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return errResponse(res.Status())
	}
	return nil
}

type errResponse string

func (e errResponse) Error() string { return "elasticsearch: " + string(e) }
