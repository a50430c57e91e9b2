package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// UserDirectory resolves recipient contact details for a user id
type UserDirectory interface {
	GetContact(ctx context.Context, id uuid.UUID) (email, phone, name string, err error)
}

// Service is the facade domain services publish through. Failures are
// the caller's to log, never to fail a booking operation on.
type Service interface {
	NotifyBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID,
		notType NotificationType, templateData map[string]interface{}) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ServiceConfig struct {
	KafkaBrokers       []string
	NotificationTopic  string
	ConsumerGroupID    string
	NumConsumerWorkers int
}

type kafkaService struct {
	config   *ServiceConfig
	producer NotificationProducer
	consumer NotificationConsumer
	users    UserDirectory

	isRunning bool
	mu        sync.RWMutex
	cancel    context.CancelFunc
}

// NewService wires a producer and consumer group against the configured
// brokers. Delivery services may be nil to skip a channel.
func NewService(config *ServiceConfig, users UserDirectory, emailService EmailService, smsService SMSService) (Service, error) {
	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.NotificationTopic = config.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.NotificationTopic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService, smsService)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	return &kafkaService{
		config:   config,
		producer: producer,
		consumer: consumer,
		users:    users,
	}, nil
}

func (s *kafkaService) NotifyBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID,
	notType NotificationType, templateData map[string]interface{}) error {

	email, phone, name, err := s.users.GetContact(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}

	notification := NewNotificationBuilder().
		WithType(notType).
		WithRecipient(userID, email, phone, name).
		WithBookingContext(bookingID).
		WithSubject(generateSubject(notType, templateData)).
		WithTemplateData(templateData).
		Build()

	return s.producer.PublishNotification(ctx, notification)
}

func (s *kafkaService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	workers := s.config.NumConsumerWorkers
	if workers <= 0 {
		workers = 3
	}

	if err := s.consumer.StartConsumers(workerCtx, workers); err != nil {
		cancel()
		return fmt.Errorf("failed to start notification consumers: %w", err)
	}

	s.isRunning = true
	log.Println("📨 Notification service started")
	return nil
}

func (s *kafkaService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	var firstErr error
	if err := s.consumer.Stop(); err != nil {
		firstErr = err
	}
	if err := s.producer.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	s.isRunning = false
	log.Println("📨 Notification service stopped")
	return firstErr
}

func (s *kafkaService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return fmt.Errorf("notification service is not running")
	}
	return s.consumer.HealthCheck(ctx)
}

func generateSubject(notType NotificationType, data map[string]interface{}) string {
	bookingNumber, _ := data["booking_number"].(string)

	switch notType {
	case NotificationTypeBookingConfirmed:
		if bookingNumber != "" {
			return fmt.Sprintf("✅ Booking %s confirmed", bookingNumber)
		}
		return "✅ Your booking is confirmed!"
	case NotificationTypeBookingCancelled:
		if bookingNumber != "" {
			return fmt.Sprintf("❌ Booking %s cancelled", bookingNumber)
		}
		return "❌ Your booking has been cancelled"
	case NotificationTypePaymentReceived:
		return "💳 Payment received"
	case NotificationTypeRefundApproved:
		return "💰 Your refund has been approved"
	case NotificationTypeRefundDenied:
		return "Refund request update"
	default:
		return "📧 Notification from Hotelio"
	}
}

// noopService drops everything; used when the Kafka pipeline is disabled
type noopService struct{}

func NewNoopService() Service {
	return noopService{}
}

func (noopService) NotifyBooking(context.Context, uuid.UUID, uuid.UUID, NotificationType, map[string]interface{}) error {
	return nil
}
func (noopService) Start(context.Context) error       { return nil }
func (noopService) Stop() error                       { return nil }
func (noopService) HealthCheck(context.Context) error { return nil }
