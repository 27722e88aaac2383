package websocket

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBufferSize = 256
)

var (
	ErrUserNotConnected = errors.New("user not connected")
	ErrBufferFull       = errors.New("connection buffer full")
	ErrManagerClosed    = errors.New("websocket manager closed")
)

// Manager handles editor WebSocket sessions and message routing
type Manager struct {
	connections map[string]*Connection
	mu          sync.RWMutex
	hub         *Hub
	upgrader    websocket.Upgrader
	logger      *zap.Logger
	pumps       sync.WaitGroup
	closeOnce   sync.Once
}

// Connection represents an editor session
type Connection struct {
	ID            string
	UserID        string
	ApplicationID string
	Conn          *websocket.Conn
	Send          chan Message
	LastActivity  time.Time
	UserAgent     string
	IPAddress     string
	mu            sync.Mutex
	closed        bool
}

// Hub owns the Send channels of registered connections
type Hub struct {
	connections map[*Connection]bool
	broadcast   chan Message
	register    chan *Connection
	unregister  chan *Connection
	stop        chan struct{}
	done        chan struct{}
	logger      *zap.Logger
}

// NewManager creates a new WebSocket manager and starts its hub
func NewManager(logger *zap.Logger) *Manager {
	hub := &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan Message, sendBufferSize),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger,
	}

	go hub.run()

	return &Manager{
		connections: make(map[string]*Connection),
		hub:         hub,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and starts the session pumps
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID, applicationID string) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:            uuid.New().String(),
		UserID:        userID,
		ApplicationID: applicationID,
		Conn:          conn,
		Send:          make(chan Message, sendBufferSize),
		LastActivity:  time.Now(),
		UserAgent:     r.Header.Get("User-Agent"),
		IPAddress:     r.RemoteAddr,
	}

	select {
	case m.hub.register <- connection:
	case <-m.hub.done:
		conn.Close()
		return nil, ErrManagerClosed
	}

	m.mu.Lock()
	m.connections[connection.ID] = connection
	m.mu.Unlock()

	m.pumps.Add(2)
	go m.readPump(connection)
	go m.writePump(connection)

	return connection, nil
}

func (m *Manager) readPump(conn *Connection) {
	defer func() {
		m.remove(conn)
		conn.Conn.Close()
		m.pumps.Done()
	}()

	conn.Conn.SetReadLimit(maxMessageSize)
	conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := conn.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Warn("WebSocket read failed", zap.String("connection_id", conn.ID), zap.Error(err))
			}
			return
		}

		conn.mu.Lock()
		conn.LastActivity = time.Now()
		conn.mu.Unlock()

		m.handleMessage(conn, &msg)
	}
}

func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
		m.pumps.Done()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming editor messages
func (m *Manager) handleMessage(conn *Connection, msg *Message) {
	switch msg.Type {
	case MessageTypePresence:
		if data, ok := msg.Data.(map[string]interface{}); ok {
			if appID, ok := data["application_id"].(string); ok {
				conn.mu.Lock()
				conn.ApplicationID = appID
				conn.mu.Unlock()
			}
		}
		conn.enqueue(Message{
			Type:          MessageTypeStatus,
			Data:          map[string]interface{}{"status": "connected", "connection_id": conn.ID},
			Timestamp:     time.Now(),
			Target:        conn.UserID,
			ApplicationID: conn.applicationID(),
		})
	default:
		m.logger.Debug("Unknown message type", zap.String("type", string(msg.Type)))
	}
}

func (m *Manager) remove(conn *Connection) {
	m.mu.Lock()
	delete(m.connections, conn.ID)
	m.mu.Unlock()

	select {
	case m.hub.unregister <- conn:
	case <-m.hub.done:
	}
}

func (h *Hub) run() {
	defer close(h.done)
	for {
		select {
		case conn := <-h.register:
			h.connections[conn] = true
			h.logger.Debug("Connection registered", zap.String("connection_id", conn.ID), zap.String("user_id", conn.UserID))

		case conn := <-h.unregister:
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				conn.close()
				h.logger.Debug("Connection unregistered", zap.String("connection_id", conn.ID), zap.String("user_id", conn.UserID))
			}

		case message := <-h.broadcast:
			for conn := range h.connections {
				if !conn.enqueue(message) {
					conn.close()
					delete(h.connections, conn)
				}
			}

		case <-h.stop:
			for conn := range h.connections {
				conn.close()
				delete(h.connections, conn)
			}
			return
		}
	}
}

// enqueue delivers without blocking. It returns false if the session is closed or its buffer is full.
func (c *Connection) enqueue(message Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Connection) applicationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ApplicationID
}

// SendToUser sends a message to every session of a user
func (m *Manager) SendToUser(userID string, message Message) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := false
	delivered := false
	for _, conn := range m.connections {
		if conn.UserID != userID {
			continue
		}
		found = true
		message.Target = userID
		if conn.enqueue(message) {
			delivered = true
		}
	}

	if !found {
		return ErrUserNotConnected
	}
	if !delivered {
		return ErrBufferFull
	}
	return nil
}

// SendToApplication sends a message to every session editing an application
func (m *Manager) SendToApplication(applicationID string, message Message) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent := 0
	for _, conn := range m.connections {
		if conn.applicationID() != applicationID {
			continue
		}
		message.ApplicationID = applicationID
		if conn.enqueue(message) {
			sent++
		}
	}

	if sent == 0 {
		return fmt.Errorf("no sessions connected to application %s", applicationID)
	}
	return nil
}

// Broadcast sends a message to all connected sessions
func (m *Manager) Broadcast(message Message) error {
	select {
	case <-m.hub.done:
		return ErrManagerClosed
	default:
	}

	select {
	case m.hub.broadcast <- message:
		return nil
	default:
		return fmt.Errorf("broadcast channel full")
	}
}

// ConnectionCount returns the number of active sessions
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// UserConnections returns all sessions of a user
func (m *Manager) UserConnections(userID string) []*Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var connections []*Connection
	for _, conn := range m.connections {
		if conn.UserID == userID {
			connections = append(connections, conn)
		}
	}
	return connections
}

// Close stops the hub, closes every session and waits for the pumps to exit
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.hub.stop)
		<-m.hub.done

		m.mu.Lock()
		for _, conn := range m.connections {
			conn.close()
			conn.Conn.Close()
		}
		m.mu.Unlock()

		m.pumps.Wait()
	})
}
