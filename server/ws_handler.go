package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/nxtrace/NShor/shor"
)

var factorUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	wsSendQueueSize = 1024
	wsWriteTimeout  = 5 * time.Second
)

var (
	errWSSlowConsumer  = errors.New("websocket client too slow for attempt stream")
	errWSSessionClosed = errors.New("websocket session closed")
	errWSBadPayload    = errors.New("invalid request payload")
)

type wsEnvelope struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Status int         `json:"status,omitempty"`
}

type wsConn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
	NextReader() (messageType int, r io.Reader, err error)
}

type estimateView struct {
	Source  shor.Source `json:"source"`
	Period  string      `json:"period,omitempty"`
	Outcome string      `json:"outcome,omitempty"`
}

type attemptView struct {
	N         string              `json:"n"`
	Index     int                 `json:"index"`
	Base      string              `json:"base"`
	Shortcut  bool                `json:"shortcut,omitempty"`
	Estimates []estimateView      `json:"estimates"`
	Outcome   shor.AttemptOutcome `json:"outcome"`
}

func newAttemptView(att shor.Attempt) attemptView {
	v := attemptView{
		Index:     att.Index,
		Shortcut:  att.Shortcut,
		Estimates: make([]estimateView, 0, len(att.Estimates)),
		Outcome:   att.Outcome,
	}
	if att.N != nil {
		v.N = att.N.String()
	}
	if att.Base != nil {
		v.Base = att.Base.String()
	}
	for _, e := range att.Estimates {
		ev := estimateView{Source: e.Source}
		if e.Period != nil {
			ev.Period = e.Period.String()
		}
		if e.Outcome != nil {
			ev.Outcome = e.Outcome.String()
		}
		v.Estimates = append(v.Estimates, ev)
	}
	return v
}

type wsFactorSession struct {
	conn       wsConn
	sendMu     sync.Mutex
	sendCh     chan wsEnvelope
	stopCh     chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once
	finishOnce sync.Once
	closed     atomic.Bool
}

func newWSFactorSession(conn wsConn, queueSize int) *wsFactorSession {
	if queueSize <= 0 {
		queueSize = wsSendQueueSize
	}
	s := &wsFactorSession{
		conn:       conn,
		sendCh:     make(chan wsEnvelope, queueSize),
		stopCh:     make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

func (s *wsFactorSession) writeLoop() {
	defer close(s.writerDone)
	for {
		select {
		case <-s.stopCh:
			return
		case msg, ok := <-s.sendCh:
			if !ok {
				return
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.closeWithCode(websocket.CloseInternalServerErr, "write failed")
				return
			}
		}
	}
}

func (s *wsFactorSession) send(msg wsEnvelope) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed.Load() {
		return errWSSessionClosed
	}
	select {
	case s.sendCh <- msg:
		return nil
	default:
		s.closeWithCode(websocket.CloseTryAgainLater, "client too slow for attempt stream")
		return errWSSlowConsumer
	}
}

func (s *wsFactorSession) closeWithCode(code int, reason string) {
	s.closed.Store(true)
	s.closeOnce.Do(func() {
		close(s.stopCh)
		deadline := time.Now().Add(wsWriteTimeout)
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = s.conn.Close()
	})
}

// finish drains queued envelopes and closes the connection.
func (s *wsFactorSession) finish() {
	s.finishOnce.Do(func() {
		s.sendMu.Lock()
		wasClosed := s.closed.Swap(true)
		if !wasClosed {
			close(s.sendCh)
		}
		s.sendMu.Unlock()
		<-s.writerDone
		s.closeOnce.Do(func() {
			_ = s.conn.Close()
		})
	})
}

// parseWSRequest reads the first client message. A single "target" is
// accepted next to the "targets" list used by POST /api/factor.
func parseWSRequest(message []byte) (factorRequest, error) {
	var req factorRequest
	if !gjson.ValidBytes(message) {
		return req, errWSBadPayload
	}
	root := gjson.ParseBytes(message)
	if !root.IsObject() {
		return req, errWSBadPayload
	}

	if t := root.Get("target"); t.Exists() {
		req.Targets = append(req.Targets, t.String())
	}
	root.Get("targets").ForEach(func(_, v gjson.Result) bool {
		req.Targets = append(req.Targets, v.String())
		return true
	})
	req.MaxAttempts = int(root.Get("max_attempts").Int())
	req.Oracle = root.Get("oracle").String()
	req.Shots = int(root.Get("shots").Int())
	req.Seed = root.Get("seed").Int()
	req.TimeoutMs = int(root.Get("timeout_ms").Int())
	if v := root.Get("refine"); v.Exists() {
		b := v.Bool()
		req.Refine = &b
	}
	if v := root.Get("fallback_on_reject"); v.Exists() {
		b := v.Bool()
		req.FallbackOnReject = &b
	}
	return req, nil
}

func (h *Handler) factorWebsocketHandler(c *gin.Context) {
	conn, err := factorUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	_, message, err := conn.ReadMessage()
	if err != nil {
		h.Logger.Warn("websocket read failed", zap.Error(err))
		return
	}
	h.serveFactorSession(conn, message)
}

// serveFactorSession streams one "start", then an "attempt" per attempt of
// every target in turn, then one "result" per target and a final
// "complete". Closing the client side cancels the remaining work.
func (h *Handler) serveFactorSession(conn wsConn, message []byte) {
	req, err := parseWSRequest(message)
	if err != nil {
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error(), Status: http.StatusBadRequest})
		return
	}
	conf, targets, err := h.prepare(req)
	if err != nil {
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error(), Status: http.StatusBadRequest})
		return
	}

	requestID := uuid.NewString()
	logger := h.Logger.With(zap.String("request_id", requestID))
	conf.Logger = logger

	session := newWSFactorSession(conn, wsSendQueueSize)
	defer session.finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := session.send(wsEnvelope{Type: "start", Data: gin.H{
		"request_id":   requestID,
		"targets":      req.Targets,
		"oracle":       conf.Order,
		"max_attempts": conf.MaxAttempts,
	}}); err != nil {
		logger.Warn("websocket send start failed", zap.Error(err))
		return
	}

	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				session.closeWithCode(websocket.CloseNormalClosure, "client disconnected")
				cancel()
				return
			}
		}
	}()

	logger.Info("ws factor request", zap.Strings("targets", req.Targets))
	start := time.Now()
	for i, n := range targets {
		reqConf := conf
		if conf.Seed != 0 {
			reqConf.Seed = conf.Seed + int64(i)
		}
		reqConf.OnAttempt = func(att shor.Attempt) {
			if err := session.send(wsEnvelope{Type: "attempt", Data: newAttemptView(att)}); err != nil {
				cancel()
			}
		}

		var reqCtx context.Context
		var reqCancel context.CancelFunc
		if conf.Timeout > 0 {
			reqCtx, reqCancel = context.WithTimeout(ctx, conf.Timeout)
		} else {
			reqCtx, reqCancel = context.WithCancel(ctx)
		}
		res, err := shor.Factorize(reqCtx, n, reqConf)
		reqCancel()

		if session.closed.Load() {
			logger.Info("ws client gone", zap.Stringer("n", n))
			return
		}
		report := shor.NewReport(shor.Outcome{N: n, Result: res, Err: err})
		if err != nil {
			logger.Warn("factor failed", zap.Stringer("n", n), zap.Error(err))
			_ = session.send(wsEnvelope{Type: "error", Data: report, Error: err.Error(), Status: http.StatusInternalServerError})
			continue
		}
		if err := session.send(wsEnvelope{Type: "result", Data: report}); err != nil {
			return
		}
	}

	_ = session.send(wsEnvelope{Type: "complete", Data: gin.H{
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	}})
}
