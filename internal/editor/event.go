package editor

// event is applied on the loop goroutine. apply reports whether the view changed.
type event interface {
	apply(e *Editor) bool
}

type evtAddListener struct{ listener Listener }

func (ev evtAddListener) apply(e *Editor) bool {
	e.listeners = append(e.listeners, ev.listener)
	ev.listener(e.Snapshot())
	return false
}

type evtLoadCameras struct{}

func (evtLoadCameras) apply(e *Editor) bool {
	e.loadCameras()
	return false
}

type evtCamerasLoaded struct {
	cameras []Camera
	err     error
}

func (ev evtCamerasLoaded) apply(e *Editor) bool {
	if ev.err != nil {
		e.log.WithFields(e.fields()).WithError(ev.err).Error("failed to load cameras")
		e.setStatus(SeverityError, MsgCamerasFailed)
		return true
	}

	e.cameras = append([]Camera(nil), ev.cameras...)
	if e.selected != nil {
		for _, c := range e.cameras {
			if c.ID == e.selected.ID {
				return true
			}
		}
	}
	if len(e.cameras) == 0 {
		return true
	}
	return e.selectCamera(e.cameras[0].ID)
}

type evtSelectCamera struct{ id int64 }

func (ev evtSelectCamera) apply(e *Editor) bool { return e.selectCamera(ev.id) }

type evtReloadROI struct{}

func (evtReloadROI) apply(e *Editor) bool {
	if e.selected == nil || e.mode != ModeIdle || e.pending != opNone || e.load != LoadFailed {
		return false
	}
	e.status = Status{}
	e.loadROI()
	return true
}

type evtROILoaded struct {
	epoch    uint64
	cameraID int64
	polygon  Polygon
	err      error
}

func (ev evtROILoaded) apply(e *Editor) bool { return e.onROILoaded(ev) }

type evtStartDrawing struct{}

func (evtStartDrawing) apply(e *Editor) bool { return e.startDrawing() }

type evtAddPoint struct{ pointer PointerEvent }

func (ev evtAddPoint) apply(e *Editor) bool { return e.addPoint(ev.pointer) }

type evtUndo struct{}

func (evtUndo) apply(e *Editor) bool { return e.undo() }

type evtSave struct{}

func (evtSave) apply(e *Editor) bool { return e.save() }

type evtSaved struct {
	epoch     uint64
	cameraID  int64
	submitted Polygon
	saved     Polygon
	err       error
}

func (ev evtSaved) apply(e *Editor) bool { return e.onSaved(ev) }

type evtCancel struct{}

func (evtCancel) apply(e *Editor) bool { return e.cancelDrawing() }

type evtRequestDelete struct{}

func (evtRequestDelete) apply(e *Editor) bool { return e.requestDelete() }

type evtConfirmDelete struct{ confirmed bool }

func (ev evtConfirmDelete) apply(e *Editor) bool { return e.confirmDelete(ev.confirmed) }

type evtDeleted struct {
	epoch    uint64
	cameraID int64
	err      error
}

func (ev evtDeleted) apply(e *Editor) bool { return e.onDeleted(ev) }

type evtStreamLoaded struct {
	natural  Size
	rendered Rect
}

func (ev evtStreamLoaded) apply(e *Editor) bool { return e.streamLoaded(ev.natural, ev.rendered) }

type evtStreamResized struct{ rendered Rect }

func (ev evtStreamResized) apply(e *Editor) bool { return e.streamResized(ev.rendered) }

type evtStreamFailed struct{}

func (evtStreamFailed) apply(e *Editor) bool { return e.streamFailed() }

type evtRetryStream struct{}

func (evtRetryStream) apply(e *Editor) bool { return e.retryStream() }
