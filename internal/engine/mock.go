package engine

import (
	"sync"
)

// Mock is a test double for Engine.
type Mock struct {
	mu       sync.Mutex
	loaded   string
	playing  bool
	position float64
	calls    []string
	errs     map[string]error
	panics   map[string]bool
	onEnd    func()
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		errs:   make(map[string]error),
		panics: make(map[string]bool),
	}
}

func (m *Mock) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("load:" + path)
	if err := m.fail("load"); err != nil {
		return err
	}
	m.loaded = path
	m.playing = false
	m.position = 0
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play")
	if err := m.fail("play"); err != nil {
		return err
	}
	if m.loaded == "" {
		return ErrNoMedia
	}
	m.playing = true
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("pause")
	if err := m.fail("pause"); err != nil {
		return err
	}
	if m.loaded == "" {
		return ErrNoMedia
	}
	m.playing = false
	return nil
}

func (m *Mock) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("clear")
	if err := m.fail("clear"); err != nil {
		return err
	}
	m.loaded = ""
	m.playing = false
	m.position = 0
	return nil
}

func (m *Mock) Seek(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("seek")
	if err := m.fail("seek"); err != nil {
		return err
	}
	if m.loaded == "" {
		return ErrNoMedia
	}
	m.position = seconds
	return nil
}

func (m *Mock) Progress() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("progress"); err != nil {
		return 0, err
	}
	if m.loaded == "" {
		return 0, ErrNoMedia
	}
	return m.position, nil
}

func (m *Mock) SetMediaEndHandler(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = fn
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) fail(op string) error {
	if m.panics[op] {
		panic("mock engine: " + op)
	}
	return m.errs[op]
}

// Test helpers

// SetError makes every later call of op ("load", "play", "pause", "clear",
// "seek", "progress") return err. A nil err clears it.
func (m *Mock) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// SetPanic makes every later call of op panic.
func (m *Mock) SetPanic(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics[op] = true
}

// SetPosition sets the value reported by Progress.
func (m *Mock) SetPosition(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = seconds
}

// Calls returns a copy of the recorded calls, e.g. "load:/a.mp3", "play".
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CountCalls returns how many times call was recorded.
func (m *Mock) CountCalls(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

// ResetCalls forgets the recorded calls.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Loaded returns the path of the loaded media, or "".
func (m *Mock) Loaded() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Playing reports whether the mock is outputting audio.
func (m *Mock) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// FinishMedia simulates the loaded item ending naturally. The handler runs
// on a new goroutine, like a real engine callback.
func (m *Mock) FinishMedia() {
	m.mu.Lock()
	fn := m.onEnd
	m.playing = false
	m.mu.Unlock()
	if fn != nil {
		go fn()
	}
}

// FinishMediaSync is FinishMedia with the handler run on the caller's
// goroutine.
func (m *Mock) FinishMediaSync() {
	m.mu.Lock()
	fn := m.onEnd
	m.playing = false
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
