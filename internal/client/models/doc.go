// Package models defines the client-side records of the patient portal.
package models
