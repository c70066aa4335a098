package checker

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control requirement timestamps.
var timeNow = time.Now
