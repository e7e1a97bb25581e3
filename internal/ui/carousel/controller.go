package carousel

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoSlides is returned when a controller is built over an empty sequence.
	ErrNoSlides = errors.New("carousel: no slides")
	// ErrIndexOutOfRange is returned by GoTo and Select for targets outside [0, N).
	ErrIndexOutOfRange = errors.New("carousel: slide index out of range")
)

// View receives the controller's visual side effects.
type View interface {
	// CreateIndicators is called once, at construction, with the slide count.
	CreateIndicators(n int)
	// SetIndicator marks the indicator at i active or inactive.
	SetIndicator(i int, active bool)
	// Translate shifts the track so that slide i is in the viewport.
	Translate(i int)
	// SetTransitions enables or suppresses the slide animation.
	SetTransitions(enabled bool)
}

type nopView struct{}

func (nopView) CreateIndicators(int)   {}
func (nopView) SetIndicator(int, bool) {}
func (nopView) Translate(int)          {}
func (nopView) SetTransitions(bool)    {}

// Option configures a Controller.
type Option func(*Controller)

// WithView routes visual side effects to v.
func WithView(v View) Option {
	return func(c *Controller) {
		if v != nil {
			c.view = v
		}
	}
}

// WithInitialSlide makes the controller start k slides ahead of slide 0.
// The seek happens once, with transitions suppressed. k wraps modulo N and a
// negative k counts backwards from slide 0.
func WithInitialSlide(k int) Option {
	return func(c *Controller) { c.initial = k }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller presents one slide at a time from a fixed sequence.
type Controller struct {
	n           int
	current     int
	indicators  []bool
	transitions bool
	initial     int

	view View
	log  *slog.Logger
}

// New builds a controller over n slides. Slide 0 is current and its indicator
// active, unless WithInitialSlide asks for a different starting slide.
func New(n int, opts ...Option) (*Controller, error) {
	if n < 1 {
		return nil, ErrNoSlides
	}
	c := &Controller{
		n:           n,
		indicators:  make([]bool, n),
		transitions: true,
		view:        nopView{},
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.view.CreateIndicators(n)
	c.indicators[0] = true
	c.view.SetIndicator(0, true)

	if start := wrap(c.initial, n); start != 0 {
		c.setTransitions(false)
		c.moveTo(start)
		c.setTransitions(true)
		c.log.Debug("carousel initial seek", "slides", n, "slide", start)
	}
	return c, nil
}

// GoTo shows slide target.
func (c *Controller) GoTo(target int) error {
	if target < 0 || target >= c.n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, target, c.n)
	}
	c.moveTo(target)
	return nil
}

// Next shows the following slide, wrapping from the last slide to the first.
func (c *Controller) Next() {
	c.moveTo((c.current + 1) % c.n)
}

// Prev shows the preceding slide, wrapping from the first slide to the last.
func (c *Controller) Prev() {
	c.moveTo((c.current - 1 + c.n) % c.n)
}

// Select handles a click on the indicator at i. It jumps straight to slide i.
func (c *Controller) Select(i int) error {
	return c.GoTo(i)
}

// Current returns the index of the slide on screen.
func (c *Controller) Current() int { return c.current }

// Len returns the number of slides.
func (c *Controller) Len() int { return c.n }

// Offset returns how far the track is shifted, in percent of one slide width.
func (c *Controller) Offset() int { return 100 * c.current }

// TransitionsEnabled reports whether slide changes are currently animated.
func (c *Controller) TransitionsEnabled() bool { return c.transitions }

// Indicators returns a copy of the indicator states in slide order.
func (c *Controller) Indicators() []bool {
	out := make([]bool, len(c.indicators))
	copy(out, c.indicators)
	return out
}

// moveTo performs the transition to target, which must be in range.
func (c *Controller) moveTo(target int) {
	c.view.Translate(target)

	c.indicators[c.current] = false
	c.view.SetIndicator(c.current, false)
	c.indicators[target] = true
	c.view.SetIndicator(target, true)

	c.current = target
}

func (c *Controller) setTransitions(enabled bool) {
	c.transitions = enabled
	c.view.SetTransitions(enabled)
}

// wrap maps any integer onto [0, n).
func wrap(k, n int) int {
	return ((k % n) + n) % n
}
