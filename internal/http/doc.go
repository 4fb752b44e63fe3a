// Package http exposes the localization management REST surface over the
// standard library mux. Handlers authenticate through an auth.Verifier,
// validate payloads at the boundary, and delegate to the catalog service and
// the bulk importer.
package http
