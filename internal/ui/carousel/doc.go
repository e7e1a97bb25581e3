// Package carousel implements the slideshow controller behind the site's
// image carousel.
//
// A Controller owns a fixed sequence of N slides and the index of the one on
// screen. Navigation wraps in both directions, and a row of N position
// indicators is kept in sync so that exactly one of them, the one at the
// current index, is active.
//
// The controller knows nothing about HTML or input events. Visual side
// effects are pushed to a View; callers (the page binding layer, the terminal
// preview, tests) translate clicks and key presses into Next, Prev and Select.
//
// A Controller is not safe for concurrent use. All calls are expected to come
// from the single goroutine that owns the page.
package carousel
