package sessionService

import (
	"ServeTrack/internal/editor"
	"ServeTrack/pkg/metrics"
	"ServeTrack/pkg/roiclient"
	"ServeTrack/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// StoreFactory builds the backend for one session from the caller's token.
type StoreFactory func(token string) editor.Store

type Config struct {
	// APIBaseURL is where the ROI REST API is reachable from this process.
	APIBaseURL     string
	RequestTimeout time.Duration
	StreamURL      string
}

type ISessionService interface {
	Open(token string) (*Session, error)
}

type sessionService struct {
	log      *logrus.Logger
	utils    utils.IUtils
	metrics  *metrics.Metrics
	cfg      Config
	newStore StoreFactory
}

func NewSessionService(
	log *logrus.Logger,
	utils utils.IUtils,
	m *metrics.Metrics,
	cfg Config,
	newStore StoreFactory,
) ISessionService {
	if newStore == nil {
		newStore = func(token string) editor.Store {
			return roiclient.New(log, cfg.APIBaseURL,
				roiclient.WithToken(token),
				roiclient.WithTimeout(cfg.RequestTimeout),
			)
		}
	}

	return &sessionService{
		log:      log,
		utils:    utils,
		metrics:  m,
		cfg:      cfg,
		newStore: newStore,
	}
}
