// Package mqtt publishes to an MQTT broker over paho.
package mqtt

import (
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const DefaultTimeout = 10 * time.Second

// pahoClient is the subset of paho.Client the publisher uses.
type pahoClient interface {
	Connect() paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
	IsConnected() bool
}

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string

	// Timeout bounds each connect and publish. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client wraps a paho client for publishing.
type Client struct {
	client  pahoClient
	timeout time.Duration
	mu      sync.Mutex
}

// NewClient creates a client but does not connect.
func NewClient(o Options) *Client {
	opts := paho.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(false).
		SetKeepAlive(30 * time.Second)
	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}

	return newClient(paho.NewClient(opts), o.Timeout)
}

func newClient(pc pahoClient, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{client: pc, timeout: timeout}
}

// Connect attempts to connect to the broker without blocking past the
// timeout.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Connect()
	if !token.WaitTimeout(c.timeout) {
		return &ConnectTimeoutError{}
	}
	return token.Error()
}

// Publish sends payload and waits for the broker to acknowledge it at the
// given QoS.
func (c *Client) Publish(topic string, qos byte, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(c.timeout) {
		return &PublishTimeoutError{Topic: topic}
	}
	return token.Error()
}

// Disconnect cleanly disconnects from the broker.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.client.Disconnect(250)
}

func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// ConnectTimeoutError indicates connection timed out.
type ConnectTimeoutError struct{}

func (e *ConnectTimeoutError) Error() string {
	return "mqtt connect timeout"
}

// PublishTimeoutError indicates a publish was not acknowledged in time.
type PublishTimeoutError struct {
	Topic string
}

func (e *PublishTimeoutError) Error() string {
	return "mqtt publish timeout: " + e.Topic
}
