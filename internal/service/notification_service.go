package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"uplift-backend/internal/infrastructure/email"
	"uplift-backend/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const notificationSendTimeout = 10 * time.Second

// BookingNotice describes a confirmed appointment for the patient's confirmation email.
type BookingNotice struct {
	AppointmentID uuid.UUID
	PatientEmail  string
	PatientName   string
	DoctorName    string
	Date          string
	Time          string
}

// NotificationService delivers booking confirmations from a bounded queue.
// Enqueueing never blocks; when the queue is full or the service has stopped the
// notice is dropped and logged. Every notice accepted before Stop is delivered.
// Delivery failures are logged and counted, never returned to the booking path.
type NotificationService struct {
	sender  email.Sender
	log     *logrus.Logger
	metrics *metrics.BookingMetrics
	queue   chan BookingNotice

	// mu guards stopped and the close of queue against concurrent sends.
	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewNotificationService starts workers goroutines. Call Stop() during graceful shutdown.
func NewNotificationService(sender email.Sender, log *logrus.Logger, m *metrics.BookingMetrics, workers, queueSize int) *NotificationService {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	svc := &NotificationService{
		sender:  sender,
		log:     log,
		metrics: m,
		queue:   make(chan BookingNotice, queueSize),
	}

	for i := 0; i < workers; i++ {
		svc.wg.Add(1)
		go svc.worker()
	}

	return svc
}

// NotifyBooked queues a confirmation. Returns false when the notice was dropped.
func (s *NotificationService) NotifyBooked(notice BookingNotice) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		s.log.Warnf("Notification service stopped, dropping confirmation for appointment %s", notice.AppointmentID)
		s.metrics.ObserveNotification("dropped")
		return false
	}

	select {
	case s.queue <- notice:
		return true
	default:
		s.log.Warnf("Notification queue full, dropping confirmation for appointment %s", notice.AppointmentID)
		s.metrics.ObserveNotification("dropped")
		return false
	}
}

// Stop drains queued notices and waits for workers. Safe to call multiple times.
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info("NotificationService stopped")
}

func (s *NotificationService) worker() {
	defer s.wg.Done()

	for notice := range s.queue {
		s.deliver(notice)
	}
}

func (s *NotificationService) deliver(notice BookingNotice) {
	ctx, cancel := context.WithTimeout(context.Background(), notificationSendTimeout)
	defer cancel()

	err := s.sender.Send(ctx, confirmationMessage(notice))
	if err != nil {
		s.log.Warnf("Failed to send booking confirmation for appointment %s: %+v", notice.AppointmentID, err)
		s.metrics.ObserveNotification("failed")
		return
	}
	s.metrics.ObserveNotification("sent")
}

func confirmationMessage(notice BookingNotice) email.Message {
	return email.Message{
		To:      notice.PatientEmail,
		ToName:  notice.PatientName,
		Subject: "Appointment Confirmation",
		Body: fmt.Sprintf(
			"Thank you for booking an appointment with Dr. %s. Your appointment is scheduled for %s at %s.",
			notice.DoctorName, notice.Date, notice.Time,
		),
	}
}
