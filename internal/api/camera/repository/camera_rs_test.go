package cameraRepository

import (
	"ServeTrack/pkg/log"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var cameraColumns = []string{"id", "name", "url", "user_id", "is_active", "roi_coordinates", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "postgres"), log.NewDiscardLogger()), mock
}

func TestGetAllCameras(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM cameras")).
		WillReturnRows(sqlmock.NewRows(cameraColumns).
			AddRow(1, "Entrance", "rtsp://cam1", "u-1", true, []byte(`[{"x":1,"y":1},{"x":5,"y":1},{"x":5,"y":5}]`), now, nil).
			AddRow(2, "Kitchen", "rtsp://cam2", nil, false, nil, now, nil))

	client, err := repo.NewClient(false)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.Cameras.GetAllCameras(context.Background())
	if err != nil {
		t.Fatalf("GetAllCameras: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cameras", len(got))
	}
	if !got[0].HasROI() || len(got[0].ROICoordinates) != 3 || !got[0].OwnedBy("u-1") {
		t.Errorf("camera 1 = %+v", got[0])
	}
	if got[1].HasROI() || got[1].IsActive {
		t.Errorf("camera 2 = %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetCamerasByUserBindsOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs("u-9").
		WillReturnRows(sqlmock.NewRows(cameraColumns))

	client, _ := repo.NewClient(false)
	got, err := client.Cameras.GetCamerasByUser(context.Background(), "u-9")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d cameras", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
