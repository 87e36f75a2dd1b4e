package roiRepository

import (
	"ServeTrack/internal/api/roi"
	"ServeTrack/internal/entity"
	"ServeTrack/pkg/log"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var roiColumns = []string{"id", "name", "user_id", "roi_coordinates"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "postgres"), log.NewDiscardLogger()), mock
}

func TestGetCamera(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cameras")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(roiColumns).
			AddRow(3, "Dining", "u-7", `[{"x":10,"y":10},{"x":90,"y":10},{"x":90,"y":90}]`))

	client, err := repo.NewClient(false)
	if err != nil {
		t.Fatal(err)
	}
	cam, err := client.ROI.GetCamera(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetCamera: %v", err)
	}
	if cam.Name != "Dining" || !cam.OwnedBy("u-7") || len(cam.ROICoordinates) != 3 {
		t.Errorf("camera = %+v", cam)
	}
	if cam.ROICoordinates[1] != (entity.ROIPoint{X: 90, Y: 10}) {
		t.Errorf("point = %+v", cam.ROICoordinates[1])
	}
}

func TestGetCameraMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cameras")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(roiColumns))

	client, _ := repo.NewClient(false)
	if _, err := client.ROI.GetCamera(context.Background(), 9); !errors.Is(err, roi.ErrCameraNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestUpdateROIInTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	polygon := entity.ROIPolygon{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 5}}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(roiColumns).AddRow(1, "Entrance", nil, nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cameras")).
		WithArgs(`[{"x":1,"y":1},{"x":5,"y":1},{"x":5,"y":5}]`, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	client, err := repo.NewClient(true)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Rollback()

	ctx := context.Background()
	if _, err := client.ROI.GetCamera(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := client.ROI.UpdateROI(ctx, 1, polygon); err != nil {
		t.Fatalf("UpdateROI: %v", err)
	}
	if err := client.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestClearROIMissingCamera(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("roi_coordinates = NULL")).
		WithArgs(sqlmock.AnyArg(), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	client, _ := repo.NewClient(false)
	if err := client.ROI.ClearROI(context.Background(), 4); !errors.Is(err, roi.ErrCameraNotFound) {
		t.Errorf("err = %v", err)
	}
}
