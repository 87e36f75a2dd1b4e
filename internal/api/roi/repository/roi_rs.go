package roiRepository

import (
	"ServeTrack/internal/api/roi"
	"ServeTrack/internal/entity"
	contextPkg "ServeTrack/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CameraROIDB struct {
	ID             int64             `db:"id"`
	Name           sql.NullString    `db:"name"`
	UserID         sql.NullString    `db:"user_id"`
	ROICoordinates entity.ROIPolygon `db:"roi_coordinates"`
}

func (r *roiRepository) GetCamera(ctx context.Context, cameraID int64) (entity.Camera, error) {
	requestID := contextPkg.GetRequestID(ctx)

	namedQuery := queryGetCamera
	if r.locking {
		namedQuery = queryGetCameraForUpdate
	}

	query, args, err := sqlx.Named(namedQuery, map[string]interface{}{"id": cameraID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCamera named query preparation err")
		return entity.Camera{}, err
	}
	query = r.q.Rebind(query)

	var row CameraROIDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"camera_id":  cameraID,
			}).Warn("GetCamera no rows found")
			return entity.Camera{}, roi.ErrCameraNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCamera execution err")
		return entity.Camera{}, err
	}

	return entity.Camera{
		ID:             row.ID,
		Name:           row.Name.String,
		UserID:         row.UserID,
		ROICoordinates: row.ROICoordinates,
	}, nil
}

func (r *roiRepository) UpdateROI(ctx context.Context, cameraID int64, polygon entity.ROIPolygon) error {
	return r.exec(ctx, queryUpdateROI, map[string]interface{}{
		"id":              cameraID,
		"roi_coordinates": polygon,
		"updated_at":      time.Now(),
	}, "UpdateROI")
}

func (r *roiRepository) ClearROI(ctx context.Context, cameraID int64) error {
	return r.exec(ctx, queryClearROI, map[string]interface{}{
		"id":         cameraID,
		"updated_at": time.Now(),
	}, "ClearROI")
}

func (r *roiRepository) exec(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return err
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return roi.ErrCameraNotFound
	}

	return nil
}
