package cameraRepository

const (
	queryGetAllCameras = `
		SELECT
			id,
			name,
			url,
			user_id,
			is_active,
			roi_coordinates,
			created_at,
			updated_at
		FROM cameras
		ORDER BY id
	`

	queryGetCamerasByUser = `
		SELECT
			id,
			name,
			url,
			user_id,
			is_active,
			roi_coordinates,
			created_at,
			updated_at
		FROM cameras
		WHERE user_id = :user_id
		ORDER BY id
	`
)
