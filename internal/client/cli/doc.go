// Package cli provides the interactive Medesi patient command-line client.
//
// It wires configuration, the local credential store, the REST client and
// the application services into a REPL that stands in for the mobile app:
// a splash and app-entry gate, login and password-reset prompts, a home
// screen with the day's consultations, the profile with editing, and the
// read-only medical record.
//
// Screens refresh their data through fire-and-forget fetches bound to an
// async.Scope; when a fetch fails the last cached snapshot is shown.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
