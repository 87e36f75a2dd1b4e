package editor

// View is an immutable snapshot of the editor. Slices inside a View are
// never mutated after publication.
type View struct {
	Cameras        []Camera      `json:"cameras"`
	Camera         *Camera       `json:"camera"`
	Mode           Mode          `json:"mode"`
	Polygon        Polygon       `json:"polygon"`
	Persisted      Polygon       `json:"persisted"`
	Status         Status        `json:"status"`
	Load           LoadResult    `json:"load"`
	Stream         StreamState   `json:"stream"`
	StreamURL      string        `json:"stream_url"`
	Surface        Surface       `json:"surface"`
	Scale          *Scale        `json:"scale,omitempty"`
	ConfirmPrompt  string        `json:"confirm_prompt,omitempty"`
	Busy           bool          `json:"busy"`
	CanStart       bool          `json:"can_start"`
	CanUndo        bool          `json:"can_undo"`
	CanSave        bool          `json:"can_save"`
	CanCancel      bool          `json:"can_cancel"`
	CanDelete      bool          `json:"can_delete"`
	CanRetryLoad   bool          `json:"can_retry_load"`
	CanRetryStream bool          `json:"can_retry_stream"`
	Commands       []DrawCommand `json:"commands"`
}

// Listener receives every published view on the editor goroutine.
type Listener func(View)

func (e *Editor) buildView() View {
	v := View{
		Cameras:       append([]Camera(nil), e.cameras...),
		Mode:          e.mode,
		Polygon:       e.polygon.Clone(),
		Persisted:     e.persisted.Clone(),
		Status:        e.status,
		Load:          e.load,
		Stream:        e.stream,
		StreamURL:     e.streamURL,
		Surface:       e.surface,
		ConfirmPrompt: e.confirm,
		Busy:          e.pending != opNone,
	}

	if e.selected != nil {
		cam := *e.selected
		v.Camera = &cam
	}
	if e.scaleOK {
		scale := e.scale
		v.Scale = &scale
	}

	idle := e.mode == ModeIdle && !v.Busy
	drawing := e.mode == ModeDrawing && !v.Busy

	v.CanStart = idle && e.selected != nil
	v.CanUndo = drawing && len(e.polygon) > 0
	v.CanSave = drawing && len(e.polygon) >= MinPolygonPoints
	v.CanCancel = drawing
	v.CanDelete = idle && e.selected != nil && len(e.persisted) > 0
	v.CanRetryLoad = idle && e.selected != nil && e.load == LoadFailed
	v.CanRetryStream = e.selected != nil && e.stream == StreamErrored

	if e.stream == StreamActive && e.scaleOK {
		v.Commands = Render(e.polygon, e.scale)
	}

	return v
}
