package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"miniblog/internal/platform/rabbitmq"
	"miniblog/internal/repository"
)

// ViewPersistWorker drains post view events from the queue and folds them
// into the views counter.
type ViewPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.PostRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewViewPersistWorker(conn *amqp.Connection, repo *repository.PostRepository, queueName string) *ViewPersistWorker {
	return &ViewPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *ViewPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event rabbitmq.ViewEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode view event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.IncrementViews(event.PostID); err != nil {
					log.Printf("worker persist view failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ViewPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
