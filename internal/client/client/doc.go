// Package client talks to the patient portal REST API.
//
// It provides the Client contract (login, password reset, profile and
// medical-record endpoints), an HTTP implementation on top of the transport
// package, JSON decoding of the server payloads, and the bootstrap of the
// local SQLite database (InitDatabase, RunMigrations).
//
// # Error Handling
//
// Failures are reported as:
//   - ErrUnavailable: no response was received;
//   - *StatusError: a non-2xx status, carrying the server "message" if any;
//   - ErrAuthExpired: an authenticated call answered 401 (also a *StatusError);
//   - ErrMalformedResponse: a 2xx body that does not decode.
//
// Match them with errors.Is and errors.As.
package client
