// Package notify delivers status and score text from the loop side to the UI.
//
// There are two independent channels. Posting never blocks the sender and
// values arrive in post order within a channel; there is no ordering between
// the status and score channels. The UI drains each channel on its own
// goroutine or event loop.
package notify

// Visibility of the status overlay.
type Visibility int

const (
	Invisible Visibility = iota
	Visible
)

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "invisible"
}

// StatusUpdate shows or hides the status overlay. Hidden updates carry no text.
type StatusUpdate struct {
	Text       string
	Visibility Visibility
}

// ShowStatus returns an update that shows text.
func ShowStatus(text string) StatusUpdate {
	return StatusUpdate{Text: text, Visibility: Visible}
}

// HideStatus returns an update that hides the overlay.
func HideStatus() StatusUpdate {
	return StatusUpdate{Visibility: Invisible}
}

// ScoreUpdate carries the rendered score of both sides.
type ScoreUpdate struct {
	Player   string
	Opponent string
}

// Bridge is the UI notification bridge. The zero value is not usable; create
// one with NewBridge and Close it when the UI goes away.
type Bridge struct {
	status *mailbox[StatusUpdate]
	score  *mailbox[ScoreUpdate]
}

// NewBridge creates a bridge and starts its delivery goroutines.
func NewBridge() *Bridge {
	return &Bridge{
		status: newMailbox[StatusUpdate](),
		score:  newMailbox[ScoreUpdate](),
	}
}

// PostStatus queues a status update.
func (b *Bridge) PostStatus(u StatusUpdate) {
	b.status.Post(u)
}

// PostScore queues a score update.
func (b *Bridge) PostScore(u ScoreUpdate) {
	b.score.Post(u)
}

// Status returns the channel status updates are delivered on. It is closed by Close.
func (b *Bridge) Status() <-chan StatusUpdate {
	return b.status.out
}

// Scores returns the channel score updates are delivered on. It is closed by Close.
func (b *Bridge) Scores() <-chan ScoreUpdate {
	return b.score.out
}

// Pending reports how many updates are still queued on each channel.
func (b *Bridge) Pending() (status, score int) {
	return b.status.pending(), b.score.pending()
}

// Close stops delivery. Updates still queued are dropped. Safe to call twice.
func (b *Bridge) Close() {
	b.status.close()
	b.score.close()
}
