package streamService

import (
	"ServeTrack/internal/api/stream"
	"ServeTrack/pkg/metrics"
	"ServeTrack/pkg/utils"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type IStreamService interface {
	PushFrame(frame []byte) error
	Subscribe() (int, <-chan []byte)
	Unsubscribe(id int)
	Info() stream.StreamInfoResponse
	Placeholder() []byte
	Close()
}

type streamService struct {
	log     *logrus.Logger
	utils   utils.IUtils
	metrics *metrics.Metrics

	// frames older than staleAfter mark the stream offline
	staleAfter time.Duration
	now        func() time.Time

	placeholder []byte

	mu       sync.Mutex
	clients  map[int]chan []byte
	nextID   int
	latest   []byte
	latestAt time.Time
	width    int
	height   int
	frames   uint64
	closed   bool
}

func NewStreamService(
	log *logrus.Logger,
	utils utils.IUtils,
	m *metrics.Metrics,
	staleAfter time.Duration,
) (IStreamService, error) {
	placeholder, err := renderPlaceholder()
	if err != nil {
		return nil, err
	}

	return &streamService{
		log:         log,
		utils:       utils,
		metrics:     m,
		staleAfter:  staleAfter,
		now:         time.Now,
		placeholder: placeholder,
		clients:     make(map[int]chan []byte),
	}, nil
}
