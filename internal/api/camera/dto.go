package camera

type CameraResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
	HasROI   bool   `json:"has_roi"`
}

type CameraListResponse struct {
	Success bool             `json:"success"`
	Cameras []CameraResponse `json:"cameras"`
}
