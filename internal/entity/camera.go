package entity

import (
	"database/sql"
	"time"
)

type Camera struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	URL            string         `db:"url"`
	UserID         sql.NullString `db:"user_id"`
	IsActive       bool           `db:"is_active"`
	ROICoordinates ROIPolygon     `db:"roi_coordinates"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

// OwnedBy reports whether the camera belongs to userID.
func (c Camera) OwnedBy(userID string) bool {
	return c.UserID.Valid && c.UserID.String == userID
}

func (c Camera) HasROI() bool {
	return len(c.ROICoordinates) > 0
}

// ROIChange is published whenever a camera's region is saved or removed.
type ROIChange struct {
	CameraID       int64      `json:"camera_id"`
	Action         string     `json:"action"`
	ROICoordinates ROIPolygon `json:"roi_coordinates"`
	ChangedBy      string     `json:"changed_by,omitempty"`
	ChangedAt      time.Time  `json:"changed_at"`
}

const (
	ROIActionSaved   = "saved"
	ROIActionDeleted = "deleted"
)
