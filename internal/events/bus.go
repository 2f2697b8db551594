package events

import (
	"fmt"
	"reflect"
	"sync"

	eventbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// EventBus is the in-process publish/subscribe surface shared by the
// services: progress publishes, the leaderboard cache, chatbot, and
// scheduler consumers subscribe.
type EventBus interface {
	Publish(topic string, data interface{}) error
	Subscribe(topic string, handler interface{}) error
	Unsubscribe(topic string, handler interface{}) error
	Close() error
}

type subscription struct {
	topic   string
	handler interface{}
}

// eventBus wraps the EventBus library and tracks live subscriptions so
// Close can detach every handler before shutdown.
type eventBus struct {
	bus    eventbus.Bus
	logger *zap.Logger
	mu     sync.RWMutex
	subs   []subscription
	closed bool
}

// NewEventBus creates a new event bus instance
func NewEventBus(logger *zap.Logger) EventBus {
	return &eventBus{
		bus:    eventbus.New(),
		logger: logger,
	}
}

// Publish delivers an event to every subscriber of the topic, synchronously.
func (eb *eventBus) Publish(topic string, data interface{}) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return fmt.Errorf("event bus is closed")
	}

	eb.logger.Debug("Publishing event",
		zap.String("topic", topic),
		zap.Any("data", data))

	eb.bus.Publish(topic, data)
	return nil
}

// Subscribe registers a handler for the topic.
func (eb *eventBus) Subscribe(topic string, handler interface{}) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return fmt.Errorf("event bus is closed")
	}

	eb.logger.Debug("Subscribing to topic", zap.String("topic", topic))

	if err := eb.bus.Subscribe(topic, handler); err != nil {
		return err
	}
	eb.subs = append(eb.subs, subscription{topic: topic, handler: handler})
	return nil
}

// Unsubscribe removes a handler from the topic.
func (eb *eventBus) Unsubscribe(topic string, handler interface{}) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return fmt.Errorf("event bus is closed")
	}

	eb.logger.Debug("Unsubscribing from topic", zap.String("topic", topic))

	if err := eb.bus.Unsubscribe(topic, handler); err != nil {
		return err
	}
	target := reflect.ValueOf(handler).Pointer()
	for i, sub := range eb.subs {
		if sub.topic == topic && reflect.ValueOf(sub.handler).Pointer() == target {
			eb.subs = append(eb.subs[:i], eb.subs[i+1:]...)
			break
		}
	}
	return nil
}

// Close detaches every tracked subscription and rejects further use.
func (eb *eventBus) Close() error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return nil
	}

	eb.logger.Info("Closing event bus", zap.Int("subscriptions", len(eb.subs)))

	for _, sub := range eb.subs {
		if err := eb.bus.Unsubscribe(sub.topic, sub.handler); err != nil {
			eb.logger.Warn("Failed to unsubscribe handler on close",
				zap.String("topic", sub.topic),
				zap.Error(err))
		}
	}
	eb.subs = nil
	eb.closed = true
	return nil
}
