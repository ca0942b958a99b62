// Package staff implements the staff reference data: users with roles and
// credential checks, and the time-clock records of their shifts.
package staff
