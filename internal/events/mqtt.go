package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ukydev/vehicle-viewer/internal/config"
	"github.com/ukydev/vehicle-viewer/internal/models"
)

// Publisher announces changes to the vehicle registry.
type Publisher interface {
	PublishVehicleCreated(ctx context.Context, v models.Vehicle) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishVehicleCreated(context.Context, models.Vehicle) error { return nil }

// ConnectMQTT connects to cfg.Broker and waits up to timeout for the connection.
func ConnectMQTT(cfg *config.MQTTConfig, timeout time.Duration) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out after %s", cfg.Broker, timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return client, nil
}

// MQTTPublisher publishes vehicle events as JSON under a topic prefix.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

func NewMQTTPublisher(client mqtt.Client, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic}
}

// CreatedTopic is where PublishVehicleCreated sends messages.
func (p *MQTTPublisher) CreatedTopic() string {
	return p.topic + "/created"
}

// PublishVehicleCreated sends v at QoS 1 and waits for the broker or ctx.
func (p *MQTTPublisher) PublishVehicleCreated(ctx context.Context, v models.Vehicle) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle event: %w", err)
	}

	token := p.client.Publish(p.CreatedTopic(), 1, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
