// Package analytics turns page activity into tracked events.
//
// A page load produces one "Visit Website" event and a click on a link to
// the extension store produces one "Visit Extension Page" event. Both carry
// the utm_source and utm_campaign of the page URL. Events are delivered to
// every configured sink; a failing sink never prevents delivery to the
// others.
package analytics
