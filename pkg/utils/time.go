package utils

import "time"

// NowMillis returns the current time as epoch milliseconds, the timestamp
// format stored on every item.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
