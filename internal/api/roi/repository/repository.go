package roiRepository

import (
	"ServeTrack/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		ROI:      &roiRepository{q: sqlExecutor, log: r.log, locking: tx},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	ROI interface {
		GetCamera(ctx context.Context, cameraID int64) (entity.Camera, error)
		UpdateROI(ctx context.Context, cameraID int64, polygon entity.ROIPolygon) error
		ClearROI(ctx context.Context, cameraID int64) error
	}

	Commit   func() error
	Rollback func() error
}

type roiRepository struct {
	q       SQLExecutor
	log     *logrus.Logger
	locking bool
}
