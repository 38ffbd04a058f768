package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/dragsim/internal/render"
	"github.com/san-kum/dragsim/internal/sim"
)

const writeWait = 5 * time.Second

// session is one browser tab. It owns a scheduler, so a new start from the
// same tab always supersedes its previous run.
type session struct {
	conn   *websocket.Conn
	logger *slog.Logger
	sched  *sim.Scheduler

	mu      sync.Mutex // guards conn writes and surface
	surface sim.Surface
}

func newSession(conn *websocket.Conn, logger *slog.Logger, period time.Duration) *session {
	s := &session{conn: conn, logger: logger}
	s.sched = sim.NewScheduler(sim.Surface{}, s, sim.WithPeriod(period))
	return s
}

func (s *session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(data)
}

// write expects s.mu to be held.
func (s *session) write(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *session) OnTick(run sim.RunID, tick sim.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := frameMessage{
		Type:     typeFrame,
		Run:      run,
		Time:     tick.Frame.TimeInfo(),
		Velocity: tick.Frame.VelocityInfo(),
		Position: tick.Frame.PositionInfo(),
		Frame:    tick.Frame,
		Scene:    render.Build(tick.State, s.surface),
		Terminal: tick.Terminal,
	}
	if tick.Log != nil {
		msg.Log = tick.Log.String()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal frame", "run", run, "error", err)
		return
	}
	if err := s.write(data); err != nil {
		s.logger.Debug("frame write failed", "run", run, "error", err)
		return
	}
	if tick.Terminal {
		s.logger.Debug("run landed", "run", run, "time", tick.Frame.Time)
	}
}

// serve reads client messages until the connection drops.
func (s *session) serve() {
	defer s.sched.Stop()

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("connection closed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "error", err)
			if err := s.writeJSON(errorMessage{Type: typeError, Message: "malformed message"}); err != nil {
				return
			}
			continue
		}

		switch msg.Type {
		case typeStart:
			err = s.start(msg)
		case typeStop:
			s.sched.Stop()
		default:
			err = s.writeJSON(errorMessage{Type: typeError, Message: "unknown message type " + msg.Type})
		}
		if err != nil {
			return
		}
	}
}

// start validates the request before touching the active run, so a rejected
// start leaves the current flight going.
func (s *session) start(msg clientMessage) error {
	p, err := sim.ParseParams(msg.Height, msg.Speed, msg.Angle, msg.Drag)
	if err != nil {
		return s.reject(err)
	}
	surf := sim.Surface{Width: msg.SurfaceWidth, Height: msg.SurfaceHeight}
	if err := surf.Validate(); err != nil {
		return s.reject(err)
	}

	s.sched.Stop()
	s.mu.Lock()
	s.surface = surf
	s.mu.Unlock()
	s.sched.SetSurface(surf)

	if err := s.writeJSON(resetMessage{Type: typeReset, Params: p}); err != nil {
		return err
	}
	run, err := s.sched.Start(p)
	if err != nil {
		return s.reject(err)
	}
	s.logger.Info("run started", "run", run, "height", p.Height, "speed", p.Speed, "angle", p.Angle, "drag", p.Drag)
	return nil
}

func (s *session) reject(err error) error {
	msg := errorMessage{Type: typeError, Message: err.Error()}
	var fe *sim.FieldError
	if errors.As(err, &fe) {
		msg.Field = fe.Field
	}
	s.logger.Debug("start rejected", "error", err)
	return s.writeJSON(msg)
}
