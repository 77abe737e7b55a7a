// Package board implements the client side of the tracker: fetching
// paginated task listings, merging them into ordered per-column views,
// interpreting drag gestures into re-ordering intents, and applying those
// intents optimistically against the cached views before the server
// confirms them.
package board
