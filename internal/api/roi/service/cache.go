package roiService

import (
	"ServeTrack/internal/entity"
	contextPkg "ServeTrack/pkg/context"
	"ServeTrack/pkg/redis"
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

type cachedCamera struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	UserID         string            `json:"user_id,omitempty"`
	ROICoordinates entity.ROIPolygon `json:"roi_coordinates"`
}

func toCached(c entity.Camera) cachedCamera {
	return cachedCamera{
		ID:             c.ID,
		Name:           c.Name,
		UserID:         c.UserID.String,
		ROICoordinates: c.ROICoordinates,
	}
}

func (c cachedCamera) camera() entity.Camera {
	return entity.Camera{
		ID:             c.ID,
		Name:           c.Name,
		UserID:         sql.NullString{String: c.UserID, Valid: c.UserID != ""},
		ROICoordinates: c.ROICoordinates,
	}
}

// loadCamera reads through the cache. Cache errors only cost a database hit.
func (s *roiService) loadCamera(ctx context.Context, cameraID int64) (entity.Camera, error) {
	requestID := contextPkg.GetRequestID(ctx)
	key := redis.ROIKey(cameraID)

	var cached cachedCamera
	err := s.cache.GetJSON(ctx, key, &cached)
	switch {
	case err == nil:
		s.metrics.ObserveCache(true)
		return cached.camera(), nil
	case !errors.Is(err, redis.ErrCacheMiss):
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"camera_id":  cameraID,
			"error":      err.Error(),
		}).Warn("ROI cache read failed")
	}
	s.metrics.ObserveCache(false)

	repo, err := s.roiRepo.NewClient(false)
	if err != nil {
		return entity.Camera{}, err
	}

	cam, err := repo.ROI.GetCamera(ctx, cameraID)
	if err != nil {
		return entity.Camera{}, err
	}

	if err := s.cache.SetJSON(ctx, key, toCached(cam), s.cacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"camera_id":  cameraID,
			"error":      err.Error(),
		}).Warn("ROI cache write failed")
	}

	return cam, nil
}

func (s *roiService) invalidate(ctx context.Context, cameraID int64) {
	if err := s.cache.Delete(ctx, redis.ROIKey(cameraID)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"camera_id":  cameraID,
			"error":      err.Error(),
		}).Warn("ROI cache invalidation failed")
	}
}
