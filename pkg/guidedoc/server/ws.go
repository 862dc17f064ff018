package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/render"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingEvery  = pongWait * 9 / 10
	sendBuffer = 16
)

// Message types exchanged with plugin clients.
const (
	MsgGetComponents = "get-components"
	MsgSetComponents = "set-components"
	MsgCreateDoc     = "create-doc"
	MsgDoc           = "doc"
	MsgRefresh       = "refresh"
	MsgError         = "error"
)

// Request is a message sent by a plugin client.
type Request struct {
	Type      string `json:"type"`
	Component string `json:"component,omitempty"`
}

// Reply is a message sent to a plugin client.
type Reply struct {
	Type        string                   `json:"type"`
	Component   string                   `json:"component,omitempty"`
	Components  []string                 `json:"components,omitempty"`
	Found       bool                     `json:"found,omitempty"`
	Layout      *models.Node             `json:"layout,omitempty"`
	Markdown    string                   `json:"markdown,omitempty"`
	Frames      []*render.Frame          `json:"frames,omitempty"`
	Diagnostics []*models.SynthesisError `json:"diagnostics,omitempty"`
	Code        string                   `json:"code,omitempty"`
	Message     string                   `json:"message,omitempty"`
}

func errorReply(code, msg string) Reply {
	return Reply{Type: MsgError, Code: code, Message: msg}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		s.log.Debug("Websocket upgrade failed", zap.String("request_id", requestID(r.Context())), zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("request_id", requestID(r.Context())))
	log.Info("Plugin connected", zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	writeCh := make(chan Reply, sendBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			case msg := <-writeCh:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					log.Debug("Websocket write failed", zap.Error(err))
					cancel()
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("Plugin connection lost", zap.Error(err))
			}
			break
		}
		push(writeCh, s.dispatch(ctx, log, req))
	}

	cancel()
	<-done
	log.Info("Plugin disconnected")
}

// dispatch answers one plugin request.
func (s *Server) dispatch(ctx context.Context, log *zap.Logger, req Request) Reply {
	switch req.Type {
	case MsgGetComponents:
		names, err := s.Components(ctx)
		if err != nil {
			log.Warn("Unable to list components", zap.Error(err))
			return errorReply("source", err.Error())
		}
		return Reply{Type: MsgSetComponents, Components: names}

	case MsgCreateDoc:
		if strings.TrimSpace(req.Component) == "" {
			return errorReply("invalid_request", "component is required")
		}
		doc, err := s.Document(ctx, req.Component)
		if err != nil {
			log.Warn("Unable to synthesize document", zap.String("component", req.Component), zap.Error(err))
			return errorReply("source", err.Error())
		}
		return Reply{
			Type:        MsgDoc,
			Component:   doc.Component,
			Found:       doc.Found,
			Layout:      doc.Layout,
			Markdown:    doc.Markdown,
			Frames:      doc.Frames,
			Diagnostics: doc.Diagnostics,
		}

	case MsgRefresh:
		s.Refresh()
		return s.dispatch(ctx, log, Request{Type: MsgGetComponents})

	default:
		return errorReply("invalid_request", "unknown message type "+strings.TrimSpace(req.Type))
	}
}

// push queues msg without blocking, dropping the oldest queued message when
// the client is not keeping up.
func push(ch chan Reply, msg Reply) {
	select {
	case ch <- msg:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- msg:
	default:
	}
}
