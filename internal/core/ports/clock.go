package ports

import "time"

// Clock supplies the current time to use cases that stamp events.
type Clock interface {
	Now() time.Time
}
