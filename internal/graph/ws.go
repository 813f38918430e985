package graph

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
)

// Websocket transport for subscriptions, speaking the
// graphql-transport-ws subprotocol: connection_init/connection_ack,
// subscribe/next/complete, ping/pong. Queries and mutations belong on
// the HTTP endpoint; a non-subscription document sent here yields an
// error result on the stream.

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type subscribePayload struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// WSHandler upgrades /subscriptions connections and runs one
// long-lived session per client.
type WSHandler struct {
	schema   graphql.Schema
	upgrader websocket.Upgrader
}

func NewWSHandler(schema graphql.Schema) *WSHandler {
	return &WSHandler{
		schema: schema,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{"graphql-transport-ws", "graphql-ws"},
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️ graph: websocket upgrade failed: %v", err)
		return
	}
	sess := &wsSession{
		schema: h.schema,
		conn:   conn,
		ops:    make(map[string]context.CancelFunc),
	}
	sess.run(r.Context())
}

type wsSession struct {
	schema graphql.Schema
	conn   *websocket.Conn

	writeMu sync.Mutex // one writer at a time on the socket

	mu  sync.Mutex // guards ops
	ops map[string]context.CancelFunc
}

func (s *wsSession) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	defer s.conn.Close()
	// Cancelling ctx tears down every active operation, which closes
	// its bus subscription.

	for {
		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "connection_init":
			s.send(wsMessage{Type: "connection_ack"})

		case "ping":
			s.send(wsMessage{Type: "pong"})

		case "subscribe", "start": // "start" is the legacy graphql-ws name
			var payload subscribePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				log.Printf("⚠️ graph: bad subscribe payload: %v", err)
				continue
			}
			s.mu.Lock()
			if _, exists := s.ops[msg.ID]; exists {
				s.mu.Unlock()
				// Duplicate operation id; protocol says hang up.
				s.conn.Close()
				return
			}
			opCtx, opCancel := context.WithCancel(ctx)
			s.ops[msg.ID] = opCancel
			s.mu.Unlock()
			go s.execute(opCtx, msg.ID, payload)

		case "complete", "stop":
			s.mu.Lock()
			if cancelOp, ok := s.ops[msg.ID]; ok {
				cancelOp()
				delete(s.ops, msg.ID)
			}
			s.mu.Unlock()
		}
	}
}

// execute runs one subscription operation and streams its results.
func (s *wsSession) execute(ctx context.Context, id string, payload subscribePayload) {
	defer func() {
		s.mu.Lock()
		delete(s.ops, id)
		s.mu.Unlock()
	}()

	results := graphql.Subscribe(graphql.Params{
		Schema:         s.schema,
		RequestString:  payload.Query,
		VariableValues: payload.Variables,
		OperationName:  payload.OperationName,
		Context:        ctx,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-results:
			if !ok {
				s.send(wsMessage{ID: id, Type: "complete"})
				return
			}
			data, err := json.Marshal(res)
			if err != nil {
				log.Printf("⚠️ graph: encode subscription result: %v", err)
				continue
			}
			s.send(wsMessage{ID: id, Type: "next", Payload: data})
		}
	}
}

func (s *wsSession) send(msg wsMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		log.Printf("⚠️ graph: websocket write: %v", err)
	}
}
