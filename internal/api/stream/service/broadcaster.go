package streamService

import (
	"ServeTrack/internal/api/stream"

	"github.com/sirupsen/logrus"
)

const clientBuffer = 2

// PushFrame validates an encoded frame and fans it out. Slow clients drop
// frames rather than stall the detector.
func (s *streamService) PushFrame(frame []byte) error {
	if len(frame) == 0 {
		return stream.ErrEmptyFrame
	}

	width, height, err := s.utils.ImageSize(frame)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("Rejected undecodable frame")
		return stream.ErrInvalidFrame
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.latest = frame
	s.latestAt = s.now()
	s.width, s.height = width, height
	s.frames++
	s.metrics.FramesIngested.Add(1)

	for id, ch := range s.clients {
		select {
		case ch <- frame:
		default:
			s.metrics.FramesDropped.Add(1)
			s.log.WithField("client", id).Debug("MJPEG client is behind, dropping frame")
		}
	}

	return nil
}

func (s *streamService) Subscribe() (int, <-chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan []byte, clientBuffer)
	if s.closed {
		close(ch)
		return id, ch
	}

	if s.latest != nil && s.now().Sub(s.latestAt) < s.staleAfter {
		ch <- s.latest
	}
	s.clients[id] = ch
	s.metrics.StreamClients.Add(1)

	s.log.WithFields(logrus.Fields{"client": id, "total": len(s.clients)}).Debug("MJPEG client subscribed")
	return id, ch
}

func (s *streamService) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.clients[id]; ok {
		close(ch)
		delete(s.clients, id)
		s.metrics.StreamClients.Add(-1)
		s.log.WithFields(logrus.Fields{"client": id, "total": len(s.clients)}).Debug("MJPEG client unsubscribed")
	}
}

func (s *streamService) Info() stream.StreamInfoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := stream.StreamInfoResponse{
		Width:   s.width,
		Height:  s.height,
		Frames:  s.frames,
		Clients: len(s.clients),
	}
	if !s.latestAt.IsZero() {
		at := s.latestAt
		info.LastFrameAt = &at
		info.Online = s.now().Sub(at) < s.staleAfter
	}
	return info
}

func (s *streamService) Placeholder() []byte {
	return s.placeholder
}

// Close ends every subscription; MJPEG writers exit when their channel closes.
func (s *streamService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
		s.metrics.StreamClients.Add(-1)
	}
}
