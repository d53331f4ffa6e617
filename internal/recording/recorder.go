package recording

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oooAHOYooo/pathr/internal/shared/format"
	"github.com/oooAHOYooo/pathr/internal/shared/geo"
	"github.com/oooAHOYooo/pathr/internal/shared/trip"
	"github.com/oooAHOYooo/pathr/internal/store"
)

// State is the recorder lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time copy of the recorder, safe to hand to any
// rendering layer.
type Snapshot struct {
	State          State
	StartedAtMs    int64
	Points         []trip.TripPoint
	DistanceMeters float64
}

// Recorder is the in-memory trip recording state machine:
// Idle -> Recording <-> Paused -> Idle. Stop is the only transition that
// emits a finalized trip, committed to the injected TripStore. All methods
// are safe for concurrent use, though callers are expected to drive it from
// a single goroutine; the display ticker is the only internal concurrency.
type Recorder struct {
	mu    sync.Mutex
	store *store.TripStore

	now       func() time.Time
	newID     func() string
	tickEvery time.Duration

	state          State
	startedAtMs    int64
	pausedAtMs     int64
	points         []trip.TripPoint
	distanceMeters float64

	subs    map[int]func(Snapshot)
	nextSub int
	tickCh  chan struct{}
}

func NewRecorder(tripStore *store.TripStore) *Recorder {
	return &Recorder{
		store:     tripStore,
		now:       time.Now,
		newID:     func() string { return "t_" + uuid.NewString()[:8] },
		tickEvery: 500 * time.Millisecond,
		subs:      map[int]func(Snapshot){},
	}
}

// Start begins a new recording session. Effective from Idle only; the point
// buffer and rolling distance reset to empty.
func (r *Recorder) Start() {
	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return
	}
	r.state = StateRecording
	r.startedAtMs = r.now().UnixMilli()
	r.pausedAtMs = 0
	r.points = nil
	r.distanceMeters = 0
	r.startTickLocked()
	snap, subs := r.publishLocked()
	r.mu.Unlock()
	fanOut(snap, subs)
}

// Pause suspends point intake. The elapsed-time display freezes until
// Resume.
func (r *Recorder) Pause() {
	r.mu.Lock()
	if r.state != StateRecording {
		r.mu.Unlock()
		return
	}
	r.state = StatePaused
	r.pausedAtMs = r.now().UnixMilli()
	r.stopTickLocked()
	snap, subs := r.publishLocked()
	r.mu.Unlock()
	fanOut(snap, subs)
}

// Resume re-enters Recording from Paused.
func (r *Recorder) Resume() {
	r.mu.Lock()
	if r.state != StatePaused {
		r.mu.Unlock()
		return
	}
	r.state = StateRecording
	r.pausedAtMs = 0
	r.startTickLocked()
	snap, subs := r.publishLocked()
	r.mu.Unlock()
	fanOut(snap, subs)
}

// AddPoint appends one GPS sample and recomputes the rolling distance over
// the whole buffer. Ignored unless actively recording. Recomputing from
// scratch keeps the distance invariant trivially auditable.
func (r *Recorder) AddPoint(lat, lng float64) {
	r.mu.Lock()
	if r.state != StateRecording || r.startedAtMs == 0 {
		r.mu.Unlock()
		return
	}
	r.points = append(r.points, trip.TripPoint{
		Latitude:  lat,
		Longitude: lng,
		Timestamp: r.now().UnixMilli(),
	})
	r.distanceMeters = geo.LineDistanceMeters(pathOf(r.points))
	snap, subs := r.publishLocked()
	r.mu.Unlock()
	fanOut(snap, subs)
}

// Stop finalizes the session and returns to Idle. The finalized trip is
// wrapped with its point buffer and prepended to the store. Stop without a
// prior Start, or with fewer than two recorded points, resets state and
// persists nothing (returns nil).
func (r *Recorder) Stop() (*trip.StoredTrip, error) {
	r.mu.Lock()
	r.stopTickLocked()

	if r.startedAtMs == 0 || len(r.points) < 2 {
		r.resetLocked()
		snap, subs := r.publishLocked()
		r.mu.Unlock()
		fanOut(snap, subs)
		return nil, nil
	}

	endedAt := r.now()
	endedAtMs := endedAt.UnixMilli()
	durationSeconds := (endedAtMs - r.startedAtMs + 500) / 1000
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	distance := r.distanceMeters
	endedISO := endedAt.UTC().Format(time.RFC3339)

	stored := trip.StoredTrip{
		Trip: trip.Trip{
			ID:              r.newID(),
			UserID:          "local",
			Name:            "Trip",
			StartedAt:       time.UnixMilli(r.startedAtMs).UTC().Format(time.RFC3339),
			EndedAt:         endedISO,
			DistanceMeters:  &distance,
			DurationSeconds: &durationSeconds,
			IsPrivate:       true,
			CreatedAt:       endedISO,
			UpdatedAt:       endedISO,
		},
		Points: r.points,
	}

	err := r.store.Append(stored)
	r.resetLocked()
	snap, subs := r.publishLocked()
	r.mu.Unlock()
	fanOut(snap, subs)

	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Snapshot returns a copy of the current state for rendering.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Subscribe registers a change callback and returns its cancel func.
// Callbacks fire on every transition and point, and on the display tick
// while actively recording.
func (r *Recorder) Subscribe(fn func(Snapshot)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// StatusText renders the display line, e.g. "Recording • 03:12 • 1.4 mi".
// Empty while idle. Elapsed time is held at the pause timestamp while
// paused.
func (r *Recorder) StatusText() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateIdle || r.startedAtMs == 0 {
		return ""
	}

	untilMs := r.now().UnixMilli()
	label := "Recording"
	if r.state == StatePaused {
		label = "Paused"
		untilMs = r.pausedAtMs
	}
	elapsed := (untilMs - r.startedAtMs + 500) / 1000
	return label + " • " + format.FormatClock(elapsed) + " • " + format.FormatDistanceMiles(r.distanceMeters)
}

func (r *Recorder) snapshotLocked() Snapshot {
	pts := make([]trip.TripPoint, len(r.points))
	copy(pts, r.points)
	return Snapshot{
		State:          r.state,
		StartedAtMs:    r.startedAtMs,
		Points:         pts,
		DistanceMeters: r.distanceMeters,
	}
}

func (r *Recorder) resetLocked() {
	r.state = StateIdle
	r.startedAtMs = 0
	r.pausedAtMs = 0
	r.points = nil
	r.distanceMeters = 0
}

func (r *Recorder) publishLocked() (Snapshot, []func(Snapshot)) {
	snap := r.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func fanOut(snap Snapshot, subs []func(Snapshot)) {
	for _, fn := range subs {
		fn(snap)
	}
}

// startTickLocked acquires the display tick handle. stopTickLocked releases
// it; together they guarantee the ticker never outlives active recording.
func (r *Recorder) startTickLocked() {
	if r.tickCh != nil {
		return
	}
	done := make(chan struct{})
	r.tickCh = done

	go func() {
		ticker := time.NewTicker(r.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.mu.Lock()
				snap, subs := r.publishLocked()
				r.mu.Unlock()
				fanOut(snap, subs)
			}
		}
	}()
}

func (r *Recorder) stopTickLocked() {
	if r.tickCh == nil {
		return
	}
	close(r.tickCh)
	r.tickCh = nil
}

func pathOf(points []trip.TripPoint) []geo.Point {
	pts := make([]geo.Point, len(points))
	for i, p := range points {
		pts[i] = geo.Point{Lat: p.Latitude, Lng: p.Longitude}
	}
	return pts
}
