package editor

import (
	"context"
	"sync"
	"time"

	"ServeTrack/pkg/response"
	"ServeTrack/pkg/utils"

	"github.com/sirupsen/logrus"
)

type pendingOp int

const (
	opNone pendingOp = iota
	opSave
	opDelete
)

type Config struct {
	// StreamURL is used for cameras that do not carry their own feed URL.
	StreamURL      string
	RequestTimeout time.Duration
	Now            func() time.Time
}

func (c Config) withDefaults() Config {
	if c.StreamURL == "" {
		c.StreamURL = "/api/v1/video_feed_processed"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Editor owns the region drawing state of one operator session. All state
// changes happen on a single goroutine; exported methods only enqueue events
// and may be called from anywhere.
type Editor struct {
	log   *logrus.Logger
	store Store
	utils utils.IUtils
	cfg   Config

	ctx       context.Context
	cancel    context.CancelFunc
	events    chan event
	done      chan struct{}
	closeOnce sync.Once

	// owned by the loop goroutine
	cameras   []Camera
	selected  *Camera
	mode      Mode
	polygon   Polygon
	persisted Polygon
	status    Status
	load      LoadResult
	epoch     uint64
	pending   pendingOp
	confirm   string
	stream    StreamState
	streamURL string
	surface   Surface
	scale     Scale
	scaleOK   bool
	listeners []Listener

	mu   sync.RWMutex
	view View
}

func New(log *logrus.Logger, store Store, u utils.IUtils, cfg Config) *Editor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		log:    log,
		store:  store,
		utils:  u,
		cfg:    cfg.withDefaults(),
		ctx:    ctx,
		cancel: cancel,
		events: make(chan event, 64),
		done:   make(chan struct{}),
		load:   LoadPending,
	}
	e.view = e.buildView()

	go e.loop()

	return e
}

// Snapshot returns the most recently published view.
func (e *Editor) Snapshot() View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.view
}

// AddListener registers l and immediately hands it the current view.
func (e *Editor) AddListener(l Listener) {
	e.send(evtAddListener{listener: l})
}

// Close stops the loop and cancels outstanding requests. Results arriving
// afterwards are dropped.
func (e *Editor) Close() {
	e.closeOnce.Do(func() {
		e.cancel()
		close(e.done)
	})
}

func (e *Editor) LoadCameras()                 { e.send(evtLoadCameras{}) }
func (e *Editor) SelectCamera(id int64)        { e.send(evtSelectCamera{id: id}) }
func (e *Editor) ReloadROI()                   { e.send(evtReloadROI{}) }
func (e *Editor) StartDrawing()                { e.send(evtStartDrawing{}) }
func (e *Editor) AddPoint(p PointerEvent)      { e.send(evtAddPoint{pointer: p}) }
func (e *Editor) UndoLastPoint()               { e.send(evtUndo{}) }
func (e *Editor) Save()                        { e.send(evtSave{}) }
func (e *Editor) Cancel()                      { e.send(evtCancel{}) }
func (e *Editor) RequestDelete()               { e.send(evtRequestDelete{}) }
func (e *Editor) ConfirmDelete(confirmed bool) { e.send(evtConfirmDelete{confirmed: confirmed}) }
func (e *Editor) StreamLoaded(n Size, r Rect)  { e.send(evtStreamLoaded{natural: n, rendered: r}) }
func (e *Editor) StreamResized(r Rect)         { e.send(evtStreamResized{rendered: r}) }
func (e *Editor) StreamFailed()                { e.send(evtStreamFailed{}) }
func (e *Editor) RetryStream()                 { e.send(evtRetryStream{}) }

func (e *Editor) send(ev event) {
	select {
	case <-e.done:
		return
	default:
	}

	select {
	case e.events <- ev:
	case <-e.done:
	}
}

func (e *Editor) loop() {
	for {
		select {
		case <-e.done:
			return
		case ev := <-e.events:
			if ev.apply(e) {
				e.publish()
			}
		}
	}
}

func (e *Editor) publish() {
	v := e.buildView()

	e.mu.Lock()
	e.view = v
	e.mu.Unlock()

	for _, l := range e.listeners {
		l(v)
	}
}

func (e *Editor) fields() logrus.Fields {
	f := logrus.Fields{"component": "roi_editor", "epoch": e.epoch}
	if e.selected != nil {
		f["camera_id"] = e.selected.ID
	}
	return f
}

func (e *Editor) setStatus(sev Severity, text string) {
	e.status = Status{Severity: sev, Text: text}
}

func (e *Editor) failStatus(err error, fallback string) {
	if msg, ok := response.Message(err); ok {
		e.setStatus(SeverityError, msg)
		return
	}
	e.setStatus(SeverityError, fallback)
}

func (e *Editor) current(epoch uint64, cameraID int64) bool {
	return epoch == e.epoch && e.selected != nil && e.selected.ID == cameraID
}

func (e *Editor) streamURLFor(cam Camera) string {
	if cam.StreamURL != "" {
		return cam.StreamURL
	}
	return e.cfg.StreamURL
}

// request runs fn off the loop with the configured timeout and posts its
// result back as an event.
func (e *Editor) request(fn func(ctx context.Context) event) {
	go func() {
		ctx, cancel := context.WithTimeout(e.ctx, e.cfg.RequestTimeout)
		defer cancel()
		e.send(fn(ctx))
	}()
}

func (e *Editor) loadCameras() {
	e.request(func(ctx context.Context) event {
		cams, err := e.store.ListCameras(ctx)
		return evtCamerasLoaded{cameras: cams, err: err}
	})
}

func (e *Editor) selectCamera(id int64) bool {
	var found *Camera
	for i := range e.cameras {
		if e.cameras[i].ID == id {
			cam := e.cameras[i]
			found = &cam
			break
		}
	}
	if found == nil {
		e.log.WithFields(e.fields()).WithField("requested_camera_id", id).Warn("unknown camera selected")
		e.setStatus(SeverityError, MsgCameraNotFound)
		return true
	}

	e.selected = found
	e.mode = ModeIdle
	e.polygon = nil
	e.persisted = nil
	e.pending = opNone
	e.confirm = ""
	e.status = Status{}
	e.stream = StreamLoading
	e.streamURL = e.streamURLFor(*found)
	e.surface = Surface{}
	e.scale = Scale{}
	e.scaleOK = false

	e.loadROI()
	return true
}

func (e *Editor) loadROI() {
	e.epoch++
	e.load = LoadPending

	epoch, cameraID := e.epoch, e.selected.ID
	e.log.WithFields(e.fields()).Debug("loading roi")

	e.request(func(ctx context.Context) event {
		polygon, err := e.store.LoadROI(ctx, cameraID)
		return evtROILoaded{epoch: epoch, cameraID: cameraID, polygon: polygon, err: err}
	})
}

func (e *Editor) onROILoaded(ev evtROILoaded) bool {
	if !e.current(ev.epoch, ev.cameraID) {
		e.log.WithFields(e.fields()).WithField("stale_epoch", ev.epoch).Debug("discarding stale roi load")
		return false
	}

	polygon := ev.polygon.Clone()
	err := ev.err
	if err == nil && !polygon.Valid() {
		err = response.NewError(500, "roi has fewer than 3 points")
	}

	switch {
	case err != nil:
		e.log.WithFields(e.fields()).WithError(err).Warn("failed to load roi")
		e.load = LoadFailed
		e.persisted = nil
		e.setStatus(SeverityError, MsgLoadFailed)
	case len(polygon) == 0:
		e.load = LoadNotConfigured
		e.persisted = nil
	default:
		e.load = LoadConfigured
		e.persisted = polygon
	}

	if e.mode == ModeIdle {
		e.polygon = e.persisted.Clone()
	}
	return true
}

func (e *Editor) startDrawing() bool {
	if e.selected == nil || e.mode != ModeIdle || e.pending != opNone {
		return false
	}
	e.mode = ModeDrawing
	e.polygon = Polygon{}
	e.confirm = ""
	e.setStatus(SeverityInfo, MsgDrawingHint)
	return true
}

func (e *Editor) addPoint(p PointerEvent) bool {
	if e.mode != ModeDrawing || e.pending != opNone {
		return false
	}
	if e.stream != StreamActive || !e.scaleOK {
		e.log.WithFields(e.fields()).Debug("pointer ignored, stream size unknown")
		return false
	}

	pt, ok := mapPoint(p.ClientX, p.ClientY, e.surface, e.scale)
	if !ok {
		e.log.WithFields(e.fields()).WithFields(logrus.Fields{
			"client_x": p.ClientX,
			"client_y": p.ClientY,
		}).Debug("pointer ignored, outside stream box")
		return false
	}
	e.polygon = append(e.polygon.Clone(), pt)
	return true
}

func (e *Editor) undo() bool {
	if e.mode != ModeDrawing || e.pending != opNone || len(e.polygon) == 0 {
		return false
	}
	e.polygon = e.polygon[:len(e.polygon)-1].Clone()
	return true
}

func (e *Editor) save() bool {
	if e.mode != ModeDrawing || e.pending != opNone || e.selected == nil {
		return false
	}
	if len(e.polygon) < MinPolygonPoints {
		e.setStatus(SeverityError, MsgTooFewPoints)
		return true
	}

	e.pending = opSave
	e.setStatus(SeverityInfo, MsgSaving)

	epoch, cameraID, polygon := e.epoch, e.selected.ID, e.polygon.Clone()
	e.log.WithFields(e.fields()).WithField("points", len(polygon)).Info("saving roi")

	e.request(func(ctx context.Context) event {
		saved, err := e.store.SaveROI(ctx, cameraID, polygon)
		return evtSaved{epoch: epoch, cameraID: cameraID, submitted: polygon, saved: saved, err: err}
	})
	return true
}

func (e *Editor) onSaved(ev evtSaved) bool {
	if !e.current(ev.epoch, ev.cameraID) || e.pending != opSave {
		e.log.WithFields(e.fields()).WithField("stale_epoch", ev.epoch).Debug("discarding stale save result")
		return false
	}
	e.pending = opNone

	if ev.err != nil {
		e.log.WithFields(e.fields()).WithError(ev.err).Error("failed to save roi")
		e.failStatus(ev.err, MsgSaveFailed)
		return true
	}

	canonical := ev.saved.Clone()
	if len(canonical) == 0 {
		canonical = ev.submitted.Clone()
	}

	// a load still in flight predates this write
	e.epoch++
	e.persisted = canonical
	e.polygon = canonical.Clone()
	e.mode = ModeIdle
	e.load = LoadConfigured
	e.setStatus(SeveritySuccess, MsgSaved)
	return true
}

func (e *Editor) cancelDrawing() bool {
	if e.mode != ModeDrawing || e.pending != opNone {
		return false
	}
	e.mode = ModeIdle
	e.polygon = e.persisted.Clone()
	e.status = Status{}
	e.loadROI()
	return true
}

func (e *Editor) requestDelete() bool {
	if e.mode != ModeIdle || e.pending != opNone || e.selected == nil || len(e.persisted) == 0 {
		return false
	}
	e.confirm = MsgConfirmDeleteROI
	return true
}

func (e *Editor) confirmDelete(confirmed bool) bool {
	if e.confirm == "" {
		return false
	}
	e.confirm = ""
	if !confirmed {
		return true
	}
	if e.mode != ModeIdle || e.pending != opNone || e.selected == nil || len(e.persisted) == 0 {
		return true
	}

	e.pending = opDelete
	e.setStatus(SeverityInfo, MsgDeleting)

	epoch, cameraID := e.epoch, e.selected.ID
	e.log.WithFields(e.fields()).Info("deleting roi")

	e.request(func(ctx context.Context) event {
		err := e.store.DeleteROI(ctx, cameraID)
		return evtDeleted{epoch: epoch, cameraID: cameraID, err: err}
	})
	return true
}

func (e *Editor) onDeleted(ev evtDeleted) bool {
	if !e.current(ev.epoch, ev.cameraID) || e.pending != opDelete {
		e.log.WithFields(e.fields()).WithField("stale_epoch", ev.epoch).Debug("discarding stale delete result")
		return false
	}
	e.pending = opNone

	if ev.err != nil {
		e.log.WithFields(e.fields()).WithError(ev.err).Error("failed to delete roi")
		e.failStatus(ev.err, MsgDeleteFailed)
		return true
	}

	e.epoch++
	e.polygon = nil
	e.persisted = nil
	e.load = LoadNotConfigured
	e.setStatus(SeveritySuccess, MsgDeleted)
	return true
}

func (e *Editor) streamLoaded(natural Size, rendered Rect) bool {
	if e.selected == nil || e.stream == StreamErrored {
		return false
	}
	e.stream = StreamActive
	e.surface = Surface{Natural: natural, Rendered: rendered}
	e.scale, e.scaleOK = e.surface.Scale()
	return true
}

func (e *Editor) streamResized(rendered Rect) bool {
	if e.stream != StreamActive {
		return false
	}
	e.surface.Rendered = rendered
	e.scale, e.scaleOK = e.surface.Scale()
	return true
}

func (e *Editor) streamFailed() bool {
	if e.selected == nil {
		return false
	}
	e.log.WithFields(e.fields()).Warn("stream unavailable")
	e.stream = StreamErrored
	e.scaleOK = false
	return true
}

func (e *Editor) retryStream() bool {
	if e.selected == nil || e.stream != StreamErrored {
		return false
	}
	e.stream = StreamLoading
	e.streamURL = e.utils.CacheBust(e.streamURLFor(*e.selected), e.cfg.Now())
	e.surface = Surface{}
	return true
}
