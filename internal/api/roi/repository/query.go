package roiRepository

const (
	queryGetCamera = `
		SELECT
			id,
			name,
			user_id,
			roi_coordinates
		FROM cameras
		WHERE id = :id
	`

	queryGetCameraForUpdate = queryGetCamera + `
		FOR UPDATE
	`

	queryUpdateROI = `
		UPDATE cameras
		SET
			roi_coordinates = :roi_coordinates,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryClearROI = `
		UPDATE cameras
		SET
			roi_coordinates = NULL,
			updated_at = :updated_at
		WHERE id = :id
	`
)
