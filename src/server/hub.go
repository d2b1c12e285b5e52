package server

import (
	"encoding/json"
	"net/http"
	"time"

	"log-analyzer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub is the main Hub loop
func (s *APIServer) runHub() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send current report on connect
			s.stateMutex.RLock()
			if s.latestState != nil {
				client.send <- s.latestState
			}
			s.stateMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case report := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestState = report
			s.stateMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- report:
				default:
					// Client too slow, disconnect to keep the Hub moving
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateLatestReport replaces the cached state without broadcasting.
func (s *APIServer) UpdateLatestReport(report *models.MLatestReport) {
	if report == nil {
		return
	}

	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	if report.Timestamp == 0 {
		report.Timestamp = time.Now().Unix()
	}
	s.latestState = report
}

// -----------------------------------------------------------------------------

// Broadcast queues a completed report for delivery to all clients.
func (s *APIServer) Broadcast(report *models.MLatestReport) {
	if report == nil {
		return
	}

	if report.Timestamp == 0 {
		report.Timestamp = time.Now().Unix()
	}
	report.Type = "UPDATE"

	s.broadcast <- report
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MLatestReport, 64),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	s.stateMutex.RLock()
	response := s.subscribeResponse(cmd.TopN)
	s.stateMutex.RUnlock()

	select {
	case client.send <- response:
	default:
		// Client buffer full; the Hub loop prunes slow consumers on the
		// next broadcast.
	}
}

// -----------------------------------------------------------------------------

// subscribeResponse snapshots the current report, optionally truncated
// to the client's requested top-N rows. Caller holds stateMutex.
func (s *APIServer) subscribeResponse(topN int) *models.MLatestReport {
	rows := s.latestState.Rows
	if topN > 0 && topN < len(rows) {
		rows = rows[:topN]
	}

	return &models.MLatestReport{
		Type:      "INITIAL",
		LogDate:   s.latestState.LogDate,
		Rows:      rows,
		Summary:   s.latestState.Summary,
		Timestamp: s.latestState.Timestamp,
	}
}
