package feed

import (
	"ServeTrack/internal/entity"
	"ServeTrack/pkg/metrics"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// Hub fans ROI changes out to every connected detector.
type Hub struct {
	mu      sync.Mutex
	clients map[int]chan entity.ROIChange
	nextID  int
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewHub(log *logrus.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[int]chan entity.ROIChange),
		log:     log,
		metrics: m,
	}
}

func (h *Hub) Subscribe() (int, <-chan entity.ROIChange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan entity.ROIChange, subscriberBuffer)
	h.clients[id] = ch
	h.metrics.FeedSubscribers.Add(1)

	h.log.WithFields(logrus.Fields{"subscriber": id, "total": len(h.clients)}).Debug("ROI feed subscriber added")
	return id, ch
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
		h.metrics.FeedSubscribers.Add(-1)
		h.log.WithFields(logrus.Fields{"subscriber": id, "total": len(h.clients)}).Debug("ROI feed subscriber removed")
	}
}

// Publish never blocks; a subscriber whose buffer is full misses the change
// and is expected to resync with a GET.
func (h *Hub) Publish(change entity.ROIChange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.clients {
		select {
		case ch <- change:
		default:
			h.log.WithFields(logrus.Fields{
				"subscriber": id,
				"camera_id":  change.CameraID,
			}).Warn("ROI feed subscriber is full, dropping change")
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
