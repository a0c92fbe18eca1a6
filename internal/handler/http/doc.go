// Package http implements the HTTP transport layer of the registry.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, role enforcement,
// request tracing, and access logging are handled in this package before
// requests are delegated to the service layer.
package http
