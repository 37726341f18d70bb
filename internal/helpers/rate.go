package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles recurring ambient work, such as rate-limit reporting.
var OnceAMinute = onceAMinute()

func onceAMinute() rate.Sometimes {
	return rate.Sometimes{
		Interval: time.Minute,
	}
}
