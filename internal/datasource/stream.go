package datasource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fairline/internal/models"
)

// RecordHandler is called with each batch of updated bet records from the stream
type RecordHandler func(records []*models.BetRecord) error

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// streamMessage is the wire envelope for feed stream messages
type streamMessage struct {
	Op      string       `json:"op"`
	Status  int          `json:"status,omitempty"`
	Records []feedRecord `json:"records,omitempty"`
}

// StreamClient handles the WebSocket connection to the odds feed stream API
type StreamClient struct {
	streamURL       string
	apiKey          string
	reconnectConfig ReconnectConfig
	logger          *logrus.Logger

	mu              sync.RWMutex
	conn            *websocket.Conn
	isConnected     bool
	handlers        []RecordHandler
	lastMessageTime time.Time
}

// NewStreamClient creates a new stream client
func NewStreamClient(streamURL, apiKey string, logger *logrus.Logger) *StreamClient {
	return &StreamClient{
		streamURL:       streamURL,
		apiKey:          apiKey,
		handlers:        make([]RecordHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.WithField("url", s.streamURL).Info("Connecting to odds stream")

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	go s.readMessages()

	return nil
}

// Subscribe requests live record updates for the given leagues and markets
func (s *StreamClient) Subscribe(ctx context.Context, leagues, markets []string) error {
	subMsg := map[string]interface{}{
		"op":      "subscribe",
		"apiKey":  s.apiKey,
		"leagues": leagues,
		"markets": markets,
	}

	s.logger.WithField("leagues", leagues).Info("Subscribing to odds stream")
	return s.sendMessage(subMsg)
}

// AddHandler registers a record handler
func (s *StreamClient) AddHandler(handler RecordHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the WebSocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var msg streamMessage
		err := s.conn.ReadJSON(&msg)
		if err != nil {
			s.logger.WithError(err).Warn("Stream read error")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		if msg.Op != "records" || len(msg.Records) == 0 {
			continue
		}

		records := make([]*models.BetRecord, 0, len(msg.Records))
		for _, w := range msg.Records {
			records = append(records, convertRecord(w))
		}

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(records); err != nil {
				s.logger.WithError(err).Warn("Stream handler error")
			}
		}
	}
}

// sendMessage sends a JSON message over the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the WebSocket connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	err := s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		s.logger.WithError(err).Debug("Failed to send close message")
	}

	return s.conn.Close()
}

// RunWithReconnect keeps the stream connected until the context is cancelled,
// reconnecting with exponential backoff on failure.
func (s *StreamClient) RunWithReconnect(ctx context.Context, leagues, markets []string) error {
	backoff := s.reconnectConfig.InitialBackoff
	retries := 0

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := s.Connect(ctx)
		if err == nil {
			if err := s.Subscribe(ctx, leagues, markets); err != nil {
				s.logger.WithError(err).Warn("Stream subscribe failed")
			} else {
				retries = 0
				backoff = s.reconnectConfig.InitialBackoff
				s.waitForDisconnect(ctx)
			}
		} else {
			s.logger.WithError(err).Warn("Stream connect failed")
		}

		retries++
		if s.reconnectConfig.MaxRetries > 0 && retries > s.reconnectConfig.MaxRetries {
			return fmt.Errorf("stream reconnect retries exhausted: %w", models.ErrFeedUnavailable)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
		if backoff > s.reconnectConfig.MaxBackoff {
			backoff = s.reconnectConfig.MaxBackoff
		}
	}
}

func (s *StreamClient) waitForDisconnect(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			if !s.IsConnected() {
				return
			}
		}
	}
}
