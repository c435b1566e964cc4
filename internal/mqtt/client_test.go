package mqtt

import (
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type mockToken struct {
	done bool
	err  error
}

func (t *mockToken) Wait() bool                       { return t.done }
func (t *mockToken) WaitTimeout(_ time.Duration) bool { return t.done }
func (t *mockToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.done {
		close(ch)
	}
	return ch
}
func (t *mockToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type mockClient struct {
	mu           sync.Mutex
	connectToken *mockToken
	publishToken *mockToken
	connected    bool
	published    []published
	disconnected bool
}

func newMockClient() *mockClient {
	return &mockClient{
		connectToken: &mockToken{done: true},
		publishToken: &mockToken{done: true},
	}
}

func (m *mockClient) Connect() paho.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connectToken.done && m.connectToken.err == nil {
		m.connected = true
	}
	return m.connectToken
}

func (m *mockClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return m.publishToken
}

func (m *mockClient) Disconnect(_ uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	m.disconnected = true
}

func (m *mockClient) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func TestClient_ConnectPublishDisconnect(t *testing.T) {
	mock := newMockClient()
	c := newClient(mock, 0)
	if c.timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", c.timeout)
	}

	if err := c.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if !c.IsConnected() {
		t.Fatal("expected connected client")
	}

	if err := c.Publish("vacuumworld/results/p/ids", 1, []byte(`{}`)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(mock.published) != 1 || mock.published[0].topic != "vacuumworld/results/p/ids" || mock.published[0].qos != 1 {
		t.Errorf("unexpected publish %+v", mock.published)
	}

	c.Disconnect()
	if !mock.disconnected || c.IsConnected() {
		t.Error("expected disconnect")
	}
}

func TestClient_ConnectTimeout(t *testing.T) {
	mock := newMockClient()
	mock.connectToken = &mockToken{done: false}
	c := newClient(mock, time.Millisecond)

	var timeout *ConnectTimeoutError
	if err := c.Connect(); !errors.As(err, &timeout) {
		t.Fatalf("expected ConnectTimeoutError, got %v", err)
	}
}

func TestClient_ConnectError(t *testing.T) {
	mock := newMockClient()
	mock.connectToken = &mockToken{done: true, err: errors.New("not authorized")}
	c := newClient(mock, time.Second)

	if err := c.Connect(); err == nil || err.Error() != "not authorized" {
		t.Fatalf("expected broker error, got %v", err)
	}
}

func TestClient_PublishTimeout(t *testing.T) {
	mock := newMockClient()
	mock.publishToken = &mockToken{done: false}
	c := newClient(mock, time.Millisecond)

	err := c.Publish("a/b", 0, []byte("x"))
	var timeout *PublishTimeoutError
	if !errors.As(err, &timeout) || timeout.Topic != "a/b" {
		t.Fatalf("expected PublishTimeoutError for a/b, got %v", err)
	}
}

func TestNewClient_DoesNotConnect(t *testing.T) {
	c := NewClient(Options{Broker: "tcp://127.0.0.1:1", ClientID: "test", Username: "u", Password: "p"})
	if c.IsConnected() {
		t.Error("expected new client to be disconnected")
	}
}
