// Package table implements the restaurant table entity and its availability
// state machine: Available -> Occupied -> Dirty -> Available.
package table
