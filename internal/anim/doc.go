// Package anim provides spring-driven scalar values and the cancellation scopes
// that group concurrent drives into one unit.
//
// Everything in this package runs on a single goroutine. Drives advance only
// when their Value is stepped, and continuations run at settle boundaries, so
// concurrent branches interleave cooperatively without locks.
package anim
