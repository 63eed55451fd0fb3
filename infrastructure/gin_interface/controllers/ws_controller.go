package controllers

import (
	"net/http"
	"voice-agent-api/application/ports/outbound"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type wsClientMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Model string `json:"model"`
}

type wsServerMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

type WSController interface {
	StreamChat(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type wsController struct {
	logger          outbound.LoggerPort
	streamGenerator outbound.StreamGeneratorPort
	workerPool      outbound.TaskDispatcher
	upgrader        websocket.Upgrader
}

func NewWSController(logger outbound.LoggerPort, streamGenerator outbound.StreamGeneratorPort,
	workerPool outbound.TaskDispatcher) WSController {
	return &wsController{
		logger:          logger,
		streamGenerator: streamGenerator,
		workerPool:      workerPool,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// StreamChat accepts {"type":"chat","text":...,"model":...} messages and
// streams the generated response back as chunk events, one connection serving
// any number of sequential turns.
func (w *wsController) StreamChat(c *gin.Context) {
	conn, err := w.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		w.logger.Error(err, "Failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsServerMessage{Type: "connected", Message: "Connected to voice agent stream"}); err != nil {
		return
	}

	for {
		var clientMsg wsClientMessage
		if err := conn.ReadJSON(&clientMsg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.logger.Error(err, "Websocket read failed")
			}
			return
		}

		if clientMsg.Type != "chat" || clientMsg.Text == "" {
			if err := conn.WriteJSON(wsServerMessage{Type: "error", Message: "expected a chat message with text"}); err != nil {
				return
			}
			continue
		}

		if !w.streamTurn(c, conn, clientMsg) {
			return
		}
	}
}

// streamTurn pumps one generation stream to the client. Returns false when
// the connection is no longer usable.
func (w *wsController) streamTurn(c *gin.Context, conn *websocket.Conn, clientMsg wsClientMessage) bool {
	outCh, errCh := w.streamGenerator.Generate(c.Request.Context(), outbound.GenerateParams{
		Prompt: clientMsg.Text,
		Model:  clientMsg.Model,
	})

	events, err := mergeStreamEvents(w.workerPool, outCh, errCh)
	if err != nil {
		w.logger.Error(err, "Failed to merge generation stream channels")
		return conn.WriteJSON(wsServerMessage{Type: "error", Message: err.Error()}) == nil
	}

	for {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return conn.WriteJSON(wsServerMessage{Type: "done"}) == nil
			}
			if ev.err != nil {
				return conn.WriteJSON(wsServerMessage{Type: "error", Message: ev.err.Error()}) == nil
			}
			if err := conn.WriteJSON(wsServerMessage{Type: "chunk", Text: ev.chunk}); err != nil {
				return false
			}
		}
	}
}

func (w *wsController) RegisterRoutes(g *gin.Engine) {
	g.GET("/ws/chat", w.StreamChat)
}
