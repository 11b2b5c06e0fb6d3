// Package analysis extracts periodic structure from recorded trajectories.
//
// A [Recorder] is attached to a simulator as an observer and keeps, per
// body, the X offset from the star on every tick. [DominantPeriod] turns
// such a series into an orbital period estimate in ticks using the peak of
// its power spectrum.
package analysis
