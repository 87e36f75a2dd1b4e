package roiService

import (
	"ServeTrack/internal/api/roi"
	"ServeTrack/internal/entity"
	contextPkg "ServeTrack/pkg/context"
	"ServeTrack/pkg/response"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

func (s *roiService) GetROI(ctx context.Context, user entity.UserLoginData, cameraID int64) (resp *roi.ROIResponse, err error) {
	defer func() { s.metrics.ObserveROI("get", err) }()

	cam, err := s.loadCamera(ctx, cameraID)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() && !cam.OwnedBy(user.ID) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"camera_id":  cameraID,
			"user_id":    user.ID,
		}).Warn("ROI read denied")
		return nil, roi.ErrAccessDenied
	}

	return &roi.ROIResponse{
		CameraID:       cam.ID,
		CameraName:     cam.Name,
		ROICoordinates: cam.ROICoordinates,
	}, nil
}

func (s *roiService) SaveROI(ctx context.Context, user entity.UserLoginData, cameraID int64, req roi.SaveROIRequest) (resp *roi.SaveROIResponse, err error) {
	requestID := contextPkg.GetRequestID(ctx)
	defer func() { s.metrics.ObserveROI("save", err) }()

	if !user.IsAdmin() {
		return nil, roi.ErrAdminRequired
	}
	if len(req.ROICoordinates) < 3 {
		return nil, roi.ErrInvalidROI
	}
	for _, p := range req.ROICoordinates {
		if p.X < 0 || p.Y < 0 {
			return nil, roi.ErrInvalidROI
		}
	}

	repo, err := s.roiRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, roi.ErrSaveROI
	}
	defer repo.Rollback()

	if _, err := repo.ROI.GetCamera(ctx, cameraID); err != nil {
		return nil, s.mapRepoErr(err, roi.ErrSaveROI)
	}

	polygon := entity.ROIPolygon(req.ROICoordinates)
	if err := repo.ROI.UpdateROI(ctx, cameraID, polygon); err != nil {
		return nil, s.mapRepoErr(err, roi.ErrSaveROI)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"camera_id":  cameraID,
			"error":      err.Error(),
		}).Error("Failed to commit ROI save")
		return nil, roi.ErrSaveROI
	}

	s.invalidate(ctx, cameraID)
	s.publisher.Publish(entity.ROIChange{
		CameraID:       cameraID,
		Action:         entity.ROIActionSaved,
		ROICoordinates: polygon,
		ChangedBy:      user.ID,
		ChangedAt:      s.now(),
	})

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"camera_id":  cameraID,
		"points":     len(polygon),
	}).Info("ROI saved")

	return &roi.SaveROIResponse{
		Message:        "ROI saved successfully",
		CameraID:       cameraID,
		ROICoordinates: polygon,
	}, nil
}

func (s *roiService) DeleteROI(ctx context.Context, user entity.UserLoginData, cameraID int64) (resp *roi.DeleteROIResponse, err error) {
	requestID := contextPkg.GetRequestID(ctx)
	defer func() { s.metrics.ObserveROI("delete", err) }()

	if !user.IsAdmin() {
		return nil, roi.ErrAdminRequired
	}

	repo, err := s.roiRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, roi.ErrDeleteROI
	}
	defer repo.Rollback()

	cam, err := repo.ROI.GetCamera(ctx, cameraID)
	if err != nil {
		return nil, s.mapRepoErr(err, roi.ErrDeleteROI)
	}
	if !cam.HasROI() {
		return nil, roi.ErrROINotConfigured
	}

	if err := repo.ROI.ClearROI(ctx, cameraID); err != nil {
		return nil, s.mapRepoErr(err, roi.ErrDeleteROI)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"camera_id":  cameraID,
			"error":      err.Error(),
		}).Error("Failed to commit ROI delete")
		return nil, roi.ErrDeleteROI
	}

	s.invalidate(ctx, cameraID)
	s.publisher.Publish(entity.ROIChange{
		CameraID:  cameraID,
		Action:    entity.ROIActionDeleted,
		ChangedBy: user.ID,
		ChangedAt: s.now(),
	})

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"camera_id":  cameraID,
	}).Info("ROI deleted")

	return &roi.DeleteROIResponse{
		Message:  "ROI deleted successfully",
		CameraID: cameraID,
	}, nil
}

// mapRepoErr keeps domain errors and hides everything else behind fallback.
func (s *roiService) mapRepoErr(err error, fallback error) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		return err
	}
	return fallback
}
