// Package feature implements the interactive feature list: a set of mutually
// exclusive buttons, each bound to an image that replaces the displayed one
// with a short fade.
package feature

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// SwapDelay is how long the image stays faded out before its source changes.
const SwapDelay = 200 * time.Millisecond

var (
	// ErrNoButtons is returned when the page has no feature buttons.
	ErrNoButtons = errors.New("feature: no buttons")
	// ErrNoImage is returned when the page has no display image.
	ErrNoImage = errors.New("feature: no display image")
	// ErrUnknownButton is returned by Click for an index with no button.
	ErrUnknownButton = errors.New("feature: unknown button")
)

// Button is one selector of the feature list.
type Button struct {
	Label    string
	ImageSrc string
	Active   bool
}

// Image is the display image the buttons switch between.
type Image interface {
	SetOpacity(opacity float64)
	SetSource(src string)
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Option configures a Switcher.
type Option func(*Switcher)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(sw *Switcher) {
		if s != nil {
			sw.sched = s
		}
	}
}

// WithDelay overrides SwapDelay.
func WithDelay(d time.Duration) Option {
	return func(sw *Switcher) { sw.delay = d }
}

// WithSelectHook calls f with the newly active index from inside Click,
// before Click returns and while the switcher is still locked. Bindings use it
// to keep their own markup in step with Active.
func WithSelectHook(f func(active int)) Option {
	return func(sw *Switcher) { sw.onSelect = f }
}

// Switcher swaps the display image when a feature button is clicked.
type Switcher struct {
	mu      sync.Mutex
	buttons []Button
	image   Image
	sched   Scheduler
	delay   time.Duration
	active  int

	onSelect func(active int)

	// seq numbers clicks; applied is the newest click whose swap has run.
	// Timer callbacks may run out of order, so older swaps are dropped.
	seq     uint64
	applied uint64
}

// New binds buttons to image. The last button marked Active, if any, is the
// initial selection; otherwise nothing is active until the first click.
func New(buttons []Button, image Image, opts ...Option) (*Switcher, error) {
	if len(buttons) == 0 {
		return nil, ErrNoButtons
	}
	if image == nil {
		return nil, ErrNoImage
	}
	sw := &Switcher{
		buttons: make([]Button, len(buttons)),
		image:   image,
		sched:   timeScheduler{},
		delay:   SwapDelay,
		active:  -1,
	}
	copy(sw.buttons, buttons)
	for i := range sw.buttons {
		if sw.buttons[i].Active {
			sw.active = i
		}
	}
	for i := range sw.buttons {
		sw.buttons[i].Active = i == sw.active
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw, nil
}

// Click activates button i, fades the image out and schedules the swap to the
// button's image.
func (sw *Switcher) Click(i int) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if i < 0 || i >= len(sw.buttons) {
		return fmt.Errorf("%w: %d", ErrUnknownButton, i)
	}
	for j := range sw.buttons {
		sw.buttons[j].Active = j == i
	}
	sw.active = i
	if sw.onSelect != nil {
		sw.onSelect(i)
	}

	sw.seq++
	seq := sw.seq
	src := sw.buttons[i].ImageSrc
	sw.image.SetOpacity(0)
	sw.sched.AfterFunc(sw.delay, func() {
		sw.mu.Lock()
		defer sw.mu.Unlock()
		if seq < sw.applied {
			return
		}
		sw.applied = seq
		sw.image.SetSource(src)
		sw.image.SetOpacity(1)
	})
	return nil
}

// Active returns the index of the active button, or -1 before any click.
func (sw *Switcher) Active() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.active
}

// Buttons returns a copy of the buttons with their current state.
func (sw *Switcher) Buttons() []Button {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	out := make([]Button, len(sw.buttons))
	copy(out, sw.buttons)
	return out
}
