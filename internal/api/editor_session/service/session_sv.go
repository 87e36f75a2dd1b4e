package sessionService

import (
	"ServeTrack/internal/api/editor_session"
	"ServeTrack/internal/editor"
	"ServeTrack/pkg/metrics"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Session is one operator's editor bound to a websocket connection.
type Session struct {
	ID     string
	Editor *editor.Editor

	log       *logrus.Logger
	metrics   *metrics.Metrics
	closeOnce sync.Once
}

func (s *sessionService) Open(token string) (*Session, error) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithField("error", err.Error()).Error("Failed to generate session id")
		return nil, err
	}

	ed := editor.New(s.log, s.newStore(token), s.utils, editor.Config{
		StreamURL:      s.cfg.StreamURL,
		RequestTimeout: s.cfg.RequestTimeout,
	})
	s.metrics.EditorSessions.Add(1)

	s.log.WithField("session", id).Info("Editor session opened")

	ed.LoadCameras()

	return &Session{
		ID:      id,
		Editor:  ed,
		log:     s.log,
		metrics: s.metrics,
	}, nil
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.Editor.Close()
		s.metrics.EditorSessions.Add(-1)
		s.log.WithField("session", s.ID).Info("Editor session closed")
	})
}

// Dispatch maps one client message onto the matching editor operation.
func (s *Session) Dispatch(msg editorsession.ClientMessage) error {
	ed := s.Editor

	switch msg.Type {
	case editorsession.MsgLoadCameras:
		ed.LoadCameras()
	case editorsession.MsgSelectCamera:
		if msg.CameraID <= 0 {
			return editorsession.ErrMissingCamera
		}
		ed.SelectCamera(msg.CameraID)
	case editorsession.MsgStartDrawing:
		ed.StartDrawing()
	case editorsession.MsgPointer:
		ed.AddPoint(editor.PointerEvent{ClientX: msg.ClientX, ClientY: msg.ClientY})
	case editorsession.MsgUndo:
		ed.UndoLastPoint()
	case editorsession.MsgSave:
		ed.Save()
	case editorsession.MsgCancel:
		ed.Cancel()
	case editorsession.MsgRequestDelete:
		ed.RequestDelete()
	case editorsession.MsgConfirmDelete:
		ed.ConfirmDelete(msg.Confirm)
	case editorsession.MsgReloadROI:
		ed.ReloadROI()
	case editorsession.MsgStreamLoaded:
		if msg.Natural == nil || msg.Rendered == nil {
			return editorsession.ErrMissingSurface
		}
		ed.StreamLoaded(*msg.Natural, *msg.Rendered)
	case editorsession.MsgStreamResized:
		if msg.Rendered == nil {
			return editorsession.ErrMissingSurface
		}
		ed.StreamResized(*msg.Rendered)
	case editorsession.MsgStreamError:
		ed.StreamFailed()
	case editorsession.MsgStreamRetry:
		ed.RetryStream()
	default:
		s.log.WithFields(logrus.Fields{
			"session": s.ID,
			"type":    msg.Type,
		}).Warn("Unknown editor message")
		return editorsession.ErrUnknownMessage
	}

	return nil
}
