// Package session runs the per-guild playback state machine: wait for a
// queued track, open its stream, feed the voice sink, report progress,
// advance on natural end or skip. One session goroutine per guild; the
// Manager ties sessions to channel-change events.
package session

import (
	"context"
	"log"
	"time"

	"ourtube/internal/events"
	"ourtube/internal/media"
	"ourtube/internal/progress"
	"ourtube/internal/queue"
	"ourtube/internal/sink"
)

// DefaultPollInterval is how often playing sessions publish progress.
const DefaultPollInterval = 100 * time.Millisecond

// Opener yields a playback-ready stream for a track. Satisfied by
// *media.Opener; tests substitute fakes.
type Opener interface {
	Open(ctx context.Context, trackID string) (*media.TrackStream, func(), error)
}

// Deps are the process-wide collaborators a session works against. All
// of them are keyed by guild ID internally, so sessions for different
// guilds sharing one Deps never interfere.
type Deps struct {
	Queue        *queue.Store
	Progress     *progress.Map
	Events       *events.Dispatcher
	Opener       Opener
	Sink         sink.Sink
	PollInterval time.Duration
}

// Session drives playback for a single guild on a fixed output channel.
// A channel change means a new Session, not a mutation.
type Session struct {
	guildID   string
	channelID string
	deps      Deps
	poll      time.Duration
}

func New(guildID, channelID string, deps Deps) *Session {
	poll := deps.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Session{
		guildID:   guildID,
		channelID: channelID,
		deps:      deps,
		poll:      poll,
	}
}

// Run loops until ctx is canceled: idle -> loading -> playing -> advance.
// Track failures are logged and treated as finished tracks; they never
// escape the loop. A sink join failure ends the session, a fresh
// channel-change event builds the next one.
func (s *Session) Run(ctx context.Context) {
	log.Printf("[Session] guild %s: starting on channel %s", s.guildID, s.channelID)

	handle, err := s.deps.Sink.Join(ctx, s.guildID, s.channelID)
	if err != nil {
		log.Printf("[Session] guild %s: cannot join channel %s: %v", s.guildID, s.channelID, err)
		return
	}
	defer handle.Close()

	for {
		trackID, ok := s.awaitNext(ctx)
		if !ok {
			log.Printf("[Session] guild %s: stopping", s.guildID)
			return
		}
		s.playTrack(ctx, handle, trackID)

		select {
		case <-ctx.Done():
			log.Printf("[Session] guild %s: stopping", s.guildID)
			return
		default:
		}
	}
}

// awaitNext peeks the front of the queue, blocking on a one-shot push
// subscription while the queue is empty. The front item is not popped
// here; the pop happens after playback so a crash mid-track replays it.
func (s *Session) awaitNext(ctx context.Context) (string, bool) {
	for {
		if q := s.deps.Queue.List(s.guildID); len(q) > 0 {
			return q[0], true
		}

		wake := make(chan struct{})
		unsub := s.deps.Queue.OncePush(s.guildID, func(string) { close(wake) })

		// a push may have landed between the check and the subscription
		if q := s.deps.Queue.List(s.guildID); len(q) > 0 {
			unsub()
			return q[0], true
		}

		log.Printf("[Session] guild %s: idle, awaiting next track", s.guildID)
		select {
		case <-wake:
		case <-ctx.Done():
			unsub()
			return "", false
		}
	}
}

// playTrack takes a track through loading and playing. Natural end,
// skip, load failure and playback error all pop the track and release
// its resources; a hard cancel leaves it queued for the next session.
func (s *Session) playTrack(ctx context.Context, handle sink.Handle, trackID string) {
	stream, cleanup, err := s.deps.Opener.Open(ctx, trackID)
	if err != nil {
		log.Printf("[Session] guild %s: track %s failed to load, advancing: %v", s.guildID, trackID, err)
		s.deps.Queue.Pop(s.guildID)
		return
	}
	defer cleanup()
	defer stream.Close()

	fwd := newForwarder(stream)
	unsubSkip := s.deps.Events.OnSkip(s.guildID, func() {
		log.Printf("[Session] guild %s: skip requested for track %s", s.guildID, trackID)
		fwd.Cancel()
		// a sink blocked on a quiescent transcoder sits inside Read; closing
		// the stream unblocks it, and the forwarder turns the resulting
		// error into a clean end of stream
		stream.Close()
	})
	defer unsubSkip()

	pollDone := make(chan struct{})
	go s.pollProgress(stream, pollDone)
	defer close(pollDone)

	log.Printf("[Session] guild %s: playing track %s (%q)", s.guildID, trackID, stream.Meta.Title)
	if err := handle.Accept(fwd, ctx.Done()); err != nil {
		log.Printf("[Session] guild %s: playback of %s ended with error: %v", s.guildID, trackID, err)
	}

	// a hard cancel (shutdown, channel change) leaves the track queued so
	// the replacement session can replay it
	if ctx.Err() != nil {
		return
	}
	s.deps.Queue.Pop(s.guildID)
}

// pollProgress publishes elapsed/duration on a fixed cadence until done
// closes. Elapsed comes from the stream's monotonic start reading, so
// wall-clock adjustments do not warp the ratio. The raw percentage is
// reported unclamped.
func (s *Session) pollProgress(stream *media.TrackStream, done <-chan struct{}) {
	if stream.Meta.Duration <= 0 {
		return
	}

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			elapsed := time.Since(stream.StartedAt)
			s.deps.Progress.Set(s.guildID, progress.Progress{
				TrackID: stream.Meta.ID,
				Percent: float64(elapsed) / float64(stream.Meta.Duration) * 100,
			})
		}
	}
}
