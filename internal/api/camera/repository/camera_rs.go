package cameraRepository

import (
	"ServeTrack/internal/entity"
	contextPkg "ServeTrack/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CameraDB struct {
	ID             int64             `db:"id"`
	Name           sql.NullString    `db:"name"`
	URL            sql.NullString    `db:"url"`
	UserID         sql.NullString    `db:"user_id"`
	IsActive       sql.NullBool      `db:"is_active"`
	ROICoordinates entity.ROIPolygon `db:"roi_coordinates"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      sql.NullTime      `db:"updated_at"`
}

func (r *camerasRepository) GetAllCameras(ctx context.Context) ([]entity.Camera, error) {
	return r.list(ctx, queryGetAllCameras, map[string]interface{}{}, "GetAllCameras")
}

func (r *camerasRepository) GetCamerasByUser(ctx context.Context, userID string) ([]entity.Camera, error) {
	return r.list(ctx, queryGetCamerasByUser, map[string]interface{}{"user_id": userID}, "GetCamerasByUser")
}

func (r *camerasRepository) list(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) ([]entity.Camera, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []CameraDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return nil, err
	}

	out := make([]entity.Camera, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeCamera(row))
	}
	return out, nil
}

func (r *camerasRepository) makeCamera(row CameraDB) entity.Camera {
	return entity.Camera{
		ID:             row.ID,
		Name:           row.Name.String,
		URL:            row.URL.String,
		UserID:         row.UserID,
		IsActive:       row.IsActive.Bool,
		ROICoordinates: row.ROICoordinates,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
