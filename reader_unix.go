//go:build unix

package tundra

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// resizeDebounce is how long the reader coalesces a burst of SIGWINCH
// signals before reporting a single ResizeEvent. Terminals deliver a
// stream of them during an interactive drag.
const resizeDebounce = 16 * time.Millisecond

// eventReader turns raw terminal input and SIGWINCH into Events.
// It blocks in select(2) on the input fd plus a self-pipe; the pipe is
// written on signal delivery and on context cancellation so the wait
// can be interrupted without polling.
type eventReader struct {
	fd      int // terminal input, already in raw mode
	buf     []byte
	partial []byte // incomplete trailing UTF-8 sequence from the last read
	pending []Event

	sigCh        chan os.Signal
	wakeR, wakeW int
	winch        atomic.Bool
	resizeDue    time.Time // zero when no resize is being debounced
}

// newEventReader creates an eventReader for the given terminal input.
// The terminal should already be in raw mode.
func newEventReader(in *os.File) (*eventReader, error) {
	var pipe [2]int
	if err := unix.Pipe2(pipe[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}

	r := &eventReader{
		fd:    int(in.Fd()),
		buf:   make([]byte, 256),
		sigCh: make(chan os.Signal, 1),
		wakeR: pipe[0],
		wakeW: pipe[1],
	}

	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go func() {
		for range r.sigCh {
			r.winch.Store(true)
			r.wake()
		}
	}()

	return r, nil
}

// wake interrupts a blocked select by writing to the self-pipe.
func (r *eventReader) wake() {
	var b [1]byte
	// A full pipe means a wakeup is already queued.
	_, _ = unix.Write(r.wakeW, b[:])
}

// WaitEvent blocks until an event is available or ctx is cancelled.
func (r *eventReader) WaitEvent(ctx context.Context) (Event, error) {
	if len(r.pending) > 0 {
		return r.pop(), nil
	}

	stop := context.AfterFunc(ctx, r.wake)
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// A resize burst is reported once it has been quiet for the
		// debounce window.
		timeout := time.Duration(-1)
		if !r.resizeDue.IsZero() {
			timeout = time.Until(r.resizeDue)
			if timeout <= 0 {
				r.resizeDue = time.Time{}
				w, h := terminalSize(r.fd)
				return ResizeEvent{Width: w, Height: h}, nil
			}
		}

		input, woke, err := r.wait(timeout)
		if err != nil {
			return nil, err
		}
		if woke {
			r.drainWake()
			if r.winch.Swap(false) {
				r.resizeDue = time.Now().Add(resizeDebounce)
			}
			continue
		}
		if !input {
			continue
		}

		n, err := syscall.Read(r.fd, r.buf)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 {
			continue
		}

		data := r.buf[:n]
		if len(r.partial) > 0 {
			data = append(r.partial, data...)
			r.partial = nil
		}

		events, remaining := parseInputWithRemainder(data)
		if len(remaining) > 0 {
			r.partial = append([]byte(nil), remaining...)
		}
		r.pending = events
		if len(r.pending) > 0 {
			return r.pop(), nil
		}
	}
}

func (r *eventReader) pop() Event {
	ev := r.pending[0]
	r.pending = r.pending[1:]
	return ev
}

// wait blocks in select(2) until the input fd or the self-pipe is
// readable, or the timeout expires. A negative timeout blocks
// indefinitely. EINTR is reported as neither fd ready.
func (r *eventReader) wait(timeout time.Duration) (input, woke bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(r.fd)
	readFds.Set(r.wakeR)

	nfds := r.fd
	if r.wakeR > nfds {
		nfds = r.wakeR
	}

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(nfds+1, &readFds, nil, nil, tv)
	if err != nil {
		if err == unix.EINTR {
			return false, false, nil
		}
		return false, false, err
	}
	if n == 0 {
		return false, false, nil
	}
	return readFds.IsSet(r.fd), readFds.IsSet(r.wakeR), nil
}

// drainWake empties the self-pipe so a stale wakeup does not spin the
// next wait.
func (r *eventReader) drainWake() {
	var b [64]byte
	for {
		n, err := unix.Read(r.wakeR, b[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// Close releases the signal handler and the self-pipe.
func (r *eventReader) Close() error {
	signal.Stop(r.sigCh)
	close(r.sigCh)
	unix.Close(r.wakeR)
	unix.Close(r.wakeW)
	return nil
}

// terminalSize returns the terminal dimensions for the given fd,
// falling back to 80x24 when the ioctl fails.
func terminalSize(fd int) (width, height int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}
