// Package preferences stores the client's local key/value preferences (the
// bearer token and the cached profile snapshot) in the user_prefs table.
package preferences
