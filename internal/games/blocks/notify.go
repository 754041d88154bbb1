package blocks

import "sync"

// DefaultNoticeMS is how long a notification stays on screen.
const DefaultNoticeMS = 1500

// maxNotices caps the on-screen message list.
const maxNotices = 4

// Notice is a message shown in the side panel until it expires.
type Notice struct {
	Text        string
	RemainingMS int
}

// Notifications collects controller messages. Visible notices expire with
// simulated time; every message is also queued once as a step event.
type Notifications struct {
	mu      sync.Mutex
	ttlMS   int
	visible []Notice
	pending []string
}

// NewNotifications creates a queue whose notices last ttlMS.
func NewNotifications(ttlMS int) *Notifications {
	if ttlMS <= 0 {
		ttlMS = DefaultNoticeMS
	}
	return &Notifications{ttlMS: ttlMS}
}

// Notify implements rules.Notifier.
func (n *Notifications) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = append(n.pending, msg)
	n.visible = append(n.visible, Notice{Text: msg, RemainingMS: n.ttlMS})
	if len(n.visible) > maxNotices {
		n.visible = n.visible[len(n.visible)-maxNotices:]
	}
}

// Advance ages visible notices and drops expired ones.
func (n *Notifications) Advance(ms int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	kept := n.visible[:0]
	for _, notice := range n.visible {
		notice.RemainingMS -= ms
		if notice.RemainingMS > 0 {
			kept = append(kept, notice)
		}
	}
	n.visible = kept
}

// Visible returns the texts on screen, oldest first.
func (n *Notifications) Visible() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, len(n.visible))
	for i, notice := range n.visible {
		out[i] = notice.Text
	}
	return out
}

// Drain returns and forgets the messages raised since the last call.
func (n *Notifications) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.pending
	n.pending = nil
	return out
}

// Clear drops every notice and pending message.
func (n *Notifications) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.visible = nil
	n.pending = nil
}
