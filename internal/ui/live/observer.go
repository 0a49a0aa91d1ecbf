package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"quizlint/internal/validator"
)

// Controller runs the live UI and implements validator.Observer.
type Controller struct {
	events  chan Event
	program *tea.Program
	done    chan struct{}

	// sendMu lets senders run together while Close waits for them before closing events.
	sendMu sync.RWMutex
	closed bool

	mu    sync.Mutex
	final Model
	err   error
}

var _ validator.Observer = (*Controller)(nil)

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 1024)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithInput(nil))
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		final, err := program.Run()
		controller.mu.Lock()
		if typed, ok := final.(Model); ok {
			controller.final = typed
		}
		controller.err = err
		controller.mu.Unlock()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}

// Wait blocks until the UI has exited and returns its terminal error, if any.
func (c *Controller) Wait() error {
	if c == nil {
		return nil
	}
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// FinalState returns the state the UI ended with. It is only meaningful after Wait.
func (c *Controller) FinalState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.final.State()
}

// OnRunStart forwards the file list to the UI.
func (c *Controller) OnRunStart(files []string) {
	c.send(Event{Kind: EventRunStart, Files: append([]string(nil), files...)}, true)
}

// OnFileEvent forwards a file status update to the UI.
func (c *Controller) OnFileEvent(event validator.FileEvent) {
	blocking := event.Type != validator.FileQueued && event.Type != validator.FileValidating
	c.send(Event{Kind: EventFile, File: event}, blocking)
}

// OnRunEnd forwards the final report to the UI and closes it.
func (c *Controller) OnRunEnd(report validator.Report) {
	c.send(Event{Kind: EventRunEnd, Report: report}, true)
	c.Close()
}

// send enqueues an event. Progress-only events are dropped when the UI falls behind;
// final states wait for room unless the UI has already exited. Events after Close are dropped.
func (c *Controller) send(event Event, blocking bool) {
	if c == nil {
		return
	}
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return
	}
	if !blocking {
		select {
		case c.events <- event:
		default:
		}
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}
