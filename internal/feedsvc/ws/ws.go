package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, &client{conn: conn})
}

// HandleDisconnect forgets the socket. The caller closes the connection.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	log.Infof("socket %s unregistered", socketId)
}

// Count returns the number of registered sockets.
func (s *Ws) Count() int {
	count := 0
	s.connMap.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// Broadcast writes payload to every registered socket and returns how many
// writes succeeded. Sockets that fail are dropped.
func (s *Ws) Broadcast(payload []byte) int {
	sent := 0
	s.connMap.Range(func(key, value any) bool {
		socketId := key.(string)
		if err := value.(*client).write(payload); err != nil {
			log.Warnf("write to socket %s failed, dropping it: %v", socketId, err)
			s.connMap.Delete(socketId)
			return true
		}
		sent++
		return true // continue iterating
	})
	return sent
}

// WriteTo sends payload to a single socket.
func (s *Ws) WriteTo(socketId string, payload []byte) error {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil
	}
	return c.(*client).write(payload)
}
