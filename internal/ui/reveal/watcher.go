// Package reveal tracks scroll-triggered reveal animations.
//
// Elements are watched until they first become sufficiently visible, at which
// point they are marked visible for good and no longer watched.
package reveal

// DefaultThreshold is the visible fraction that reveals an element.
const DefaultThreshold = 0.1

// Watcher observes elements identified by K until each is first revealed.
// It is not safe for concurrent use.
type Watcher[K comparable] struct {
	threshold float64
	onReveal  func(K)
	watching  map[K]struct{}
	visible   map[K]struct{}
}

// NewWatcher returns a watcher revealing elements once at least threshold of
// them is in view. A non-positive threshold falls back to DefaultThreshold.
// onReveal, if non-nil, is called exactly once per revealed element.
func NewWatcher[K comparable](threshold float64, onReveal func(K)) *Watcher[K] {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Watcher[K]{
		threshold: threshold,
		onReveal:  onReveal,
		watching:  make(map[K]struct{}),
		visible:   make(map[K]struct{}),
	}
}

// Observe starts watching keys. Elements that were already revealed stay
// revealed and are not watched again.
func (w *Watcher[K]) Observe(keys ...K) {
	for _, k := range keys {
		if _, done := w.visible[k]; done {
			continue
		}
		w.watching[k] = struct{}{}
	}
}

// Intersect reports that ratio of the element is currently in view. It
// returns true when this sample revealed the element.
func (w *Watcher[K]) Intersect(key K, ratio float64) bool {
	if _, ok := w.watching[key]; !ok {
		return false
	}
	if ratio <= 0 || ratio < w.threshold {
		return false
	}
	delete(w.watching, key)
	w.visible[key] = struct{}{}
	if w.onReveal != nil {
		w.onReveal(key)
	}
	return true
}

// Visible reports whether key has been revealed.
func (w *Watcher[K]) Visible(key K) bool {
	_, ok := w.visible[key]
	return ok
}

// Watching reports whether key is still waiting to be revealed.
func (w *Watcher[K]) Watching(key K) bool {
	_, ok := w.watching[key]
	return ok
}

// Pending returns how many elements are still being watched.
func (w *Watcher[K]) Pending() int { return len(w.watching) }

// Threshold returns the visible fraction that reveals an element.
func (w *Watcher[K]) Threshold() float64 { return w.threshold }
