// Package perftrack bundles version information shared by the perf client
// subpackages.
package perftrack

// Version of the perf client library
const Version = "1.2.0"

// ClientName is sent alongside every delivery so the collection service can
// tell Go clients apart from the browser ones.
const ClientName = "perf-go-client"
