// Package clock exposes the time source used to measure executions.
package clock

import "time"

// NowFunc is the current time source, tests may replace it.
var NowFunc = time.Now

// Now returns NowFunc()
func Now() time.Time { return NowFunc() }

// Since returns time elapsed since t according to NowFunc
func Since(t time.Time) time.Duration { return NowFunc().Sub(t) }
