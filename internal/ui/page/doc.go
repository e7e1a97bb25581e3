// Package page attaches the site's interactive components to a parsed HTML
// document.
//
// Bind mirrors what the site script does once the DOM is ready: it looks for
// the slideshow, the animated sections, the feature list and the extension
// store links, and wires each component only when its markup is complete.
// Absent markup is not an error; the component is simply not bound.
//
// Interactions (ClickNext, ClickDot, Scroll, ClickFeature, ...) mutate the
// document the same way the browser would, and Render serialises the result.
// This keeps carousel, reveal and feature free of any event system while
// still letting them be exercised against real templates.
package page
