package roi

import "ServeTrack/internal/entity"

type SaveROIRequest struct {
	ROICoordinates []entity.ROIPoint `json:"roi_coordinates" validate:"required,min=3,dive"`
}

type ROIResponse struct {
	CameraID       int64             `json:"camera_id"`
	CameraName     string            `json:"camera_name"`
	ROICoordinates entity.ROIPolygon `json:"roi_coordinates"`
}

type SaveROIResponse struct {
	Message        string            `json:"message"`
	CameraID       int64             `json:"camera_id"`
	ROICoordinates entity.ROIPolygon `json:"roi_coordinates"`
}

type DeleteROIResponse struct {
	Message  string `json:"message"`
	CameraID int64  `json:"camera_id"`
}
