// Package pipeline assembles the request chain served on the application
// port.
//
// Every request passes, in order, through the protocol logger, request
// metrics, the latency simulator and the compression stage, and is then
// dispatched either to the /api router or to the static asset server.
// The dispatch is an explicit prefix check: anything equal to /api or under
// /api/ is answered by the API router, including its 404s.
package pipeline
