package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Политики переподключения транспорта
const (
	PolicyFireOnce     = "fire-once"     // без автоматических переподключений
	PolicyBoundedRetry = "bounded-retry" // ограниченные ретраи с растущей задержкой
)

const (
	MAX_RECONNECT_ATTEMPTS = 5               // Максимум попыток переподключения
	RECONNECT_BASE_DELAY   = 1 * time.Second // Базовая задержка, умножается на номер попытки
)

// Состояния соединения
const (
	StateConnecting = "connecting"
	StateOpen       = "open"
	StateClosed     = "closed"
)

var ErrNotConnected = fmt.Errorf("websocket is not connected")

// ChatTransport владеет ровно одним живым WebSocket-соединением.
// Ошибки выставляют флаг, но состояние меняет только настоящее закрытие.
type ChatTransport struct {
	url       string
	policy    string
	BaseDelay time.Duration

	mu       sync.Mutex
	conn     *websocket.Conn
	state    string
	lastErr  error
	closed   bool
	attempts int

	onMessage func([]byte)
	onState   func(state string)
}

func NewChatTransport(url, policy string) *ChatTransport {
	if policy != PolicyBoundedRetry {
		policy = PolicyFireOnce
	}
	return &ChatTransport{
		url:       url,
		policy:    policy,
		BaseDelay: RECONNECT_BASE_DELAY,
		state:     StateConnecting,
	}
}

// OnMessage устанавливает обработчик входящих кадров, до вызова Connect
func (t *ChatTransport) OnMessage(handler func([]byte)) {
	t.onMessage = handler
}

// OnStateChange устанавливает обработчик смены состояния, до вызова Connect
func (t *ChatTransport) OnStateChange(handler func(state string)) {
	t.onState = handler
}

// Connect открывает соединение и запускает цикл чтения.
// При политике bounded-retry неудачный dial тоже запускает ретраи.
func (t *ChatTransport) Connect(ctx context.Context) error {
	t.setState(StateConnecting)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
	if err != nil {
		t.setError(err)
		if t.policy == PolicyBoundedRetry {
			go t.reconnect(ctx)
			return nil
		}
		t.setState(StateClosed)
		return fmt.Errorf("failed to connect to %s: %w", t.url, err)
	}

	t.mu.Lock()
	t.conn = conn
	t.attempts = 0
	t.mu.Unlock()
	t.setState(StateOpen)

	go t.readLoop(ctx, conn)
	return nil
}

// Send отправляет кадр по открытому соединению.
// На неоткрытом соединении возвращает ErrNotConnected, без паники.
func (t *ChatTransport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateOpen || t.conn == nil {
		return ErrNotConnected
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.lastErr = err
		return err
	}
	return nil
}

// Close явно закрывает соединение, переподключений после этого не будет
func (t *ChatTransport) Close() {
	t.mu.Lock()
	t.closed = true
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	t.setState(StateClosed)
}

// State возвращает текущее состояние соединения
func (t *ChatTransport) State() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsConnected сообщает, открыто ли соединение
func (t *ChatTransport) IsConnected() bool {
	return t.State() == StateOpen
}

// Err возвращает последнюю ошибку транспорта
func (t *ChatTransport) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// readLoop читает кадры до разрыва соединения
func (t *ChatTransport) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			teardown := t.closed
			t.mu.Unlock()

			if !teardown {
				log.Printf("WebSocket read error: %v", err)
				t.setError(err)
			}
			t.setState(StateClosed)

			if !teardown && t.policy == PolicyBoundedRetry {
				t.reconnect(ctx)
			}
			return
		}

		if t.onMessage != nil {
			t.onMessage(data)
		}
	}
}

// reconnect выполняет ограниченные попытки переподключения.
// Задержка растет линейно: BaseDelay * номер попытки.
func (t *ChatTransport) reconnect(ctx context.Context) {
	for {
		t.mu.Lock()
		if t.closed || t.attempts >= MAX_RECONNECT_ATTEMPTS {
			t.mu.Unlock()
			t.setState(StateClosed)
			return
		}
		t.attempts++
		attempt := t.attempts
		t.mu.Unlock()

		log.Printf("Reconnecting... Attempt %d", attempt)

		select {
		case <-ctx.Done():
			t.setState(StateClosed)
			return
		case <-time.After(t.BaseDelay * time.Duration(attempt)):
		}

		t.setState(StateConnecting)
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
		if err != nil {
			t.setError(err)
			continue
		}

		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			_ = conn.Close()
			t.setState(StateClosed)
			return
		}
		t.conn = conn
		t.attempts = 0
		t.mu.Unlock()
		t.setState(StateOpen)

		go t.readLoop(ctx, conn)
		return
	}
}

func (t *ChatTransport) setState(state string) {
	t.mu.Lock()
	changed := t.state != state
	t.state = state
	handler := t.onState
	t.mu.Unlock()

	if changed && handler != nil {
		handler(state)
	}
}

func (t *ChatTransport) setError(err error) {
	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()
}
