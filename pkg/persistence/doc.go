// Package persistence saves inspector shell state between runs: the last
// loaded document and the pointers marked against its text.
package persistence
