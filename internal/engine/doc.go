// Package engine advances a population of point masses orbiting a
// fixed central attractor.
//
// Each step has two strictly ordered phases. The force phase computes
// every body's acceleration from the positions as they were at the
// start of the step; the update phase then advances velocities and
// positions in place. A full barrier separates the phases, so no force
// evaluation ever reads a position the same step has already moved.
// Within a phase, body indices are independent units of work and run
// concurrently.
//
// External readers (export, visualization) may only touch the
// population between completed [Session.Advance] calls.
package engine
