package clock

import "time"

// Clock supplies the current time to services. Production code uses System;
// tests substitute a fixed function to pin timestamps.
type Clock func() time.Time

// System returns the current UTC time.
func System() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
