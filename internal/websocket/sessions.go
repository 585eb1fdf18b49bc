package websocket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yegors/wxwidget/internal/templating"
	"github.com/yegors/wxwidget/internal/view"
	"github.com/yegors/wxwidget/internal/widget"
	"github.com/yegors/wxwidget/pkg/logger"
)

// SessionTracker counts open widget sessions
type SessionTracker interface {
	SessionOpened()
	SessionClosed()
}

// SessionConfig holds the widget settings applied to every new session
type SessionConfig struct {
	DefaultCity  string
	FetchOnStart bool
}

// SessionManager gives every connected client its own widget session
type SessionManager struct {
	config   SessionConfig
	fetcher  widget.Fetcher
	recorder widget.Recorder
	tracker  SessionTracker
	engine   *templating.Engine
	logger   *logger.Logger

	mu       sync.Mutex
	sessions map[string]*clientSession
}

type clientSession struct {
	session *widget.Session
	cancel  context.CancelFunc
}

// NewSessionManager creates a session manager. recorder and tracker may be nil.
func NewSessionManager(config SessionConfig, fetcher widget.Fetcher, recorder widget.Recorder, tracker SessionTracker, engine *templating.Engine, logger *logger.Logger) *SessionManager {
	return &SessionManager{
		config:   config,
		fetcher:  fetcher,
		recorder: recorder,
		tracker:  tracker,
		engine:   engine,
		logger:   logger.Named("ws-sessions"),
		sessions: make(map[string]*clientSession),
	}
}

// HandleConnect starts a widget session for the client
func (m *SessionManager) HandleConnect(client *Client) {
	ctx, cancel := context.WithCancel(context.Background())

	coord := widget.NewCoordinator(m.fetcher, m.recorder, m.logger)
	session := widget.NewSession(client.ID(), widget.NewState(m.config.DefaultCity), coord, m.publisher(client), m.logger)

	m.mu.Lock()
	m.sessions[client.ID()] = &clientSession{session: session, cancel: cancel}
	count := len(m.sessions)
	m.mu.Unlock()

	if m.tracker != nil {
		m.tracker.SessionOpened()
	}

	m.logger.Info("Widget session opened",
		logger.String("session_id", client.ID()),
		logger.Int("session_count", count))

	go session.Run(ctx)

	if m.config.FetchOnStart {
		session.Dispatch(widget.Submit{})
	}
}

// HandleDisconnect stops the client's session and any fetch it has in flight
func (m *SessionManager) HandleDisconnect(client *Client) {
	m.mu.Lock()
	cs, ok := m.sessions[client.ID()]
	delete(m.sessions, client.ID())
	count := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return
	}
	cs.cancel()

	if m.tracker != nil {
		m.tracker.SessionClosed()
	}

	m.logger.Info("Widget session closed",
		logger.String("session_id", client.ID()),
		logger.Int("session_count", count))
}

// HandleMessage translates a client message into a widget action
func (m *SessionManager) HandleMessage(client *Client, messageType string, data map[string]any) error {
	m.mu.Lock()
	cs, ok := m.sessions[client.ID()]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("no session for client %s", client.ID())
	}

	session := cs.session

	switch messageType {
	case MessageTypeSetCity:
		city, ok := data["city"].(string)
		if !ok {
			return errors.New("set_city requires a string city")
		}
		session.Dispatch(widget.SetCity{City: city})

	case MessageTypeSubmit:
		// The page may send the input value with the submit to avoid a separate set_city
		if city, ok := data["city"].(string); ok {
			session.Dispatch(widget.SetCity{City: city})
		}
		session.Dispatch(widget.Submit{})

	case MessageTypeSelectTab:
		name, _ := data["tab"].(string)
		tab, ok := widget.ParseTab(name)
		if !ok {
			return fmt.Errorf("unknown tab %q", name)
		}
		session.Dispatch(widget.SelectTab{Tab: tab})

	case MessageTypeCopyLocation:
		session.Dispatch(widget.CopyLocation{})

	case MessageTypeClipboardResult:
		var err error
		if ok, _ := data["ok"].(bool); !ok {
			reason, _ := data["error"].(string)
			err = fmt.Errorf("browser clipboard write failed: %s", strings.TrimSpace(reason))
			m.logger.Warn("Clipboard write failed",
				logger.String("session_id", client.ID()),
				logger.Error(err))
		}
		session.Dispatch(widget.ClipboardWritten{Err: err})

	default:
		m.logger.Debug("Unhandled message type", logger.String("type", messageType))
	}

	return nil
}

// SessionCount returns the number of open sessions
func (m *SessionManager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// publisher renders each new state for the client and forwards clipboard effects
func (m *SessionManager) publisher(client *Client) widget.PublishFunc {
	return func(state widget.State, eff widget.Effect) {
		html, err := m.engine.RenderWidget(view.Build(state))
		if err != nil {
			m.logger.Error("Failed to render widget state",
				logger.String("session_id", client.ID()),
				logger.Error(err))
			return
		}

		client.SendMessage(&Message{
			Type: MessageTypeState,
			Data: map[string]any{
				"html":          html,
				"theme":         state.Theme.Class,
				"request_state": state.Request.Name(),
				"loading":       state.IsLoading(),
			},
		})

		if write, ok := eff.(widget.WriteClipboard); ok {
			client.SendMessage(&Message{
				Type: MessageTypeClipboard,
				Data: map[string]any{"text": write.Text},
			})
		}
	}
}
