// Package server exposes the faculty search engine over HTTP.
//
// Endpoints:
//
//	POST /api/search        run a hybrid or semantic-only query
//	POST /api/compare       run both scoring modes side by side
//	GET  /api/stats         corpus statistics
//	GET  /api/faculty/:name full record lookup by exact name
//	GET  /healthz           readiness probe
//
// Handlers translate engine sentinel errors into HTTP statuses: an
// invalid query is a 400, an engine that has not finished building is a
// 503, an unreachable embedding backend is a 502, and an empty corpus
// is a 200 with an explicit no-data indicator rather than an error.
package server
