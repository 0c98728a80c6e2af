package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	TuneChanged     <-chan TuneChange
	PositionChanged <-chan PositionChange
	SpeedChanged    <-chan SpeedChange
	DurationChanged <-chan DurationChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	tuneCh     chan TuneChange
	positionCh chan PositionChange
	speedCh    chan SpeedChange
	durationCh chan DurationChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		tuneCh:     make(chan TuneChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		speedCh:    make(chan SpeedChange, eventBufferSize),
		durationCh: make(chan DurationChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TuneChanged = s.tuneCh
	s.PositionChanged = s.positionCh
	s.SpeedChanged = s.speedCh
	s.DurationChanged = s.durationCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendTune sends a tune change event (non-blocking).
func (s *Subscription) sendTune(e TuneChange) {
	select {
	case s.tuneCh <- e:
	default:
	}
}

// sendPosition sends a position change event (non-blocking).
func (s *Subscription) sendPosition(elapsed int) {
	select {
	case s.positionCh <- PositionChange{Elapsed: elapsed}:
	default:
	}
}

// sendSpeed sends a speed change event (non-blocking).
func (s *Subscription) sendSpeed(multiplier int) {
	select {
	case s.speedCh <- SpeedChange{Multiplier: multiplier}:
	default:
	}
}

// sendDuration sends a duration change event (non-blocking).
func (s *Subscription) sendDuration(seconds int) {
	select {
	case s.durationCh <- DurationChange{Seconds: seconds}:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
