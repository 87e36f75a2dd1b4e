package roiService

import (
	"ServeTrack/internal/api/roi"
	roiRepository "ServeTrack/internal/api/roi/repository"
	"ServeTrack/internal/entity"
	"ServeTrack/pkg/metrics"
	"ServeTrack/pkg/redis"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type IROIService interface {
	GetROI(ctx context.Context, user entity.UserLoginData, cameraID int64) (*roi.ROIResponse, error)
	SaveROI(ctx context.Context, user entity.UserLoginData, cameraID int64, req roi.SaveROIRequest) (*roi.SaveROIResponse, error)
	DeleteROI(ctx context.Context, user entity.UserLoginData, cameraID int64) (*roi.DeleteROIResponse, error)
}

// Publisher receives every committed ROI change.
type Publisher interface {
	Publish(change entity.ROIChange)
}

type roiService struct {
	log       *logrus.Logger
	roiRepo   roiRepository.Repository
	cache     redis.IRedis
	cacheTTL  time.Duration
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewROIService(
	log *logrus.Logger,
	roiRepo roiRepository.Repository,
	cache redis.IRedis,
	cacheTTL time.Duration,
	publisher Publisher,
	m *metrics.Metrics,
) IROIService {
	return &roiService{
		log:       log,
		roiRepo:   roiRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}
