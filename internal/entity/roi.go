package entity

import (
	"database/sql/driver"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ROIPoint struct {
	X int `json:"x" validate:"min=0"`
	Y int `json:"y" validate:"min=0"`
}

// ROIPolygon is stored as a JSONB array of {x, y} objects. A NULL column
// scans into a nil polygon.
type ROIPolygon []ROIPoint

func (p ROIPolygon) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]ROIPoint(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *ROIPolygon) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("roi_coordinates: unsupported column type")
	}

	var pts []ROIPoint
	if err := json.Unmarshal(raw, &pts); err != nil {
		return err
	}
	if len(pts) == 0 {
		*p = nil
		return nil
	}
	*p = pts
	return nil
}
