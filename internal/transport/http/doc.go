// Package http implements the HTTP handlers for the review dashboard
// service. It is a thin layer between transport and the service layer:
// handlers parse and validate requests, delegate to services, and turn
// service errors into RFC 7807 problem responses.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Analytics
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Handlers never aggregate or normalize data themselves; that belongs to
// the analytics and dataset packages.
package http
