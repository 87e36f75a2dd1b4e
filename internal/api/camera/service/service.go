package cameraService

import (
	"ServeTrack/internal/api/camera"
	cameraRepository "ServeTrack/internal/api/camera/repository"
	"ServeTrack/internal/entity"
	"context"

	"github.com/sirupsen/logrus"
)

type ICameraService interface {
	ListCameras(ctx context.Context, user entity.UserLoginData) (*camera.CameraListResponse, error)
}

type cameraService struct {
	log        *logrus.Logger
	cameraRepo cameraRepository.Repository
}

func NewCameraService(
	log *logrus.Logger,
	cameraRepo cameraRepository.Repository,
) ICameraService {
	return &cameraService{
		log:        log,
		cameraRepo: cameraRepo,
	}
}
