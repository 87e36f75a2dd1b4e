package cameraService

import (
	"ServeTrack/internal/api/camera"
	"ServeTrack/internal/entity"
	contextPkg "ServeTrack/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

// ListCameras returns every camera to admins and only owned cameras to
// everyone else.
func (s *cameraService) ListCameras(ctx context.Context, user entity.UserLoginData) (*camera.CameraListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.cameraRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	var list []entity.Camera
	if user.IsAdmin() {
		list, err = repo.Cameras.GetAllCameras(ctx)
	} else {
		list, err = repo.Cameras.GetCamerasByUser(ctx, user.ID)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
			"error":      err.Error(),
		}).Error("Failed to list cameras")
		return nil, camera.ErrListCameras
	}

	resp := &camera.CameraListResponse{
		Success: true,
		Cameras: make([]camera.CameraResponse, 0, len(list)),
	}
	for _, c := range list {
		resp.Cameras = append(resp.Cameras, camera.CameraResponse{
			ID:       c.ID,
			Name:     c.Name,
			URL:      c.URL,
			IsActive: c.IsActive,
			HasROI:   c.HasROI(),
		})
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"count":      len(resp.Cameras),
		"admin":      user.IsAdmin(),
	}).Debug("Listed cameras")

	return resp, nil
}
