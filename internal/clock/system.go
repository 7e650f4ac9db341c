package clock

import (
	"context"
	"time"
)

type SystemClock struct{}

func (SystemClock) Now(ctx context.Context) time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now(ctx context.Context) time.Time {
	return f.At
}
