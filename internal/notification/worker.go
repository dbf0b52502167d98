package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real implementation using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers "schedule committed" notifications to every push
// subscription registered for the schedule's company.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case scheduleID := <-wp.jobs:
			wp.notifyScheduleCommitted(ctx, scheduleID)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a committed schedule for notification. Satisfies the
// service layer's Notifier interface.
func (wp *WorkerPool) Dispatch(scheduleID string) {
	wp.jobs <- scheduleID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

type commitPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// notifyScheduleCommitted loads the schedule and pushes a message to every
// subscription of its company.
func (wp *WorkerPool) notifyScheduleCommitted(ctx context.Context, scheduleID string) {
	var schedule model.Schedule
	if err := wp.db.WithContext(ctx).Preload("Client").Preload("Trips").First(&schedule, "id = ?", scheduleID).Error; err != nil {
		log.Printf("error fetching schedule %s for notification: %v", scheduleID, err)
		return
	}

	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).
		Where("company_id = ?", schedule.CompanyID).
		Find(&subscriptions).Error; err != nil {
		log.Printf("error fetching subscriptions for company %s: %v", schedule.CompanyID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(commitPayload{
		Title: "Schedule committed",
		Body: fmt.Sprintf("%.0f m³ for %s: %d trips across %d mixers",
			schedule.Quantity, schedule.Client.Name, len(schedule.Trips), schedule.TMCount),
	})
	if err != nil {
		log.Printf("error encoding notification payload: %v", err)
		return
	}

	log.Printf("sending %d notifications for schedule %s", len(subscriptions), scheduleID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s is expired, deleting", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
