package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
)

// eventChanBuf is the number of notifications a bridge queues for the program.
const eventChanBuf = 100

// Bridge turns session notifications into tea messages.
//
// The session notifies synchronously, sometimes from inside Update, so notifications are
// queued and forwarded by a separate goroutine. When the queue is full or no program is
// attached, notifications are dropped: the model reads the session on every render.
type Bridge struct {
	events    chan tea.Msg
	once      sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

var _ session.Listener = (*Bridge)(nil)

// NewBridge creates a bridge without a program.
func NewBridge() *Bridge {
	return &Bridge{
		events: make(chan tea.Msg, eventChanBuf),
		done:   make(chan struct{}),
	}
}

// Attach forwards queued and future notifications to program until Close.
func (b *Bridge) Attach(program *tea.Program) {
	b.Forward(program.Send)
}

// Forward starts delivering notifications to send. Only the first call has an effect.
func (b *Bridge) Forward(send func(tea.Msg)) {
	b.once.Do(func() {
		go func() {
			for {
				select {
				case msg := <-b.events:
					send(msg)
				case <-b.done:
					return
				}
			}
		}()
	})
}

// Close stops forwarding.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *Bridge) emit(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
	}
}

// EntryAppended implements session.Listener.
func (b *Bridge) EntryAppended(index int, _ history.Entry) {
	b.emit(entryAppendedMsg{index: index})
}

// ResponseDiscarded implements session.Listener.
func (b *Bridge) ResponseDiscarded(entry history.AssistantEntry) {
	b.emit(discardedMsg{entry: entry})
}

// WaitingChanged implements session.Listener.
func (b *Bridge) WaitingChanged(waiting bool) {
	b.emit(waitingMsg{waiting: waiting})
}

// ScrollToTail implements session.Listener.
func (b *Bridge) ScrollToTail() {
	b.emit(scrollMsg{})
}

// FocusPrompt implements session.Listener.
func (b *Bridge) FocusPrompt() {
	b.emit(focusMsg{})
}
