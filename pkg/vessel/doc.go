// Package vessel keeps the latest known state of each station, merging
// dynamic reports (position, speed, course) with static data (name, call
// sign, dimensions) that arrive in separate messages.
//
// The cache is bounded by entry count and by age. Age eviction happens
// lazily on Get and in bulk through Sweep, which the cachesweep plugin
// calls periodically.
package vessel
