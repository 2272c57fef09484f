package notification

import (
	"context"
	"log"
	"time"
)

const dispatchTimeout = 5 * time.Second

// Dispatcher delivers notifications without blocking the caller. Delivery is
// best effort: a failed insert must never fail the business operation that
// triggered it.
type Dispatcher interface {
	Dispatch(req CreateRequest)
}

type asyncDispatcher struct {
	service Service
}

func NewDispatcher(service Service) Dispatcher {
	return &asyncDispatcher{service: service}
}

// Dispatch persists the notification on a detached context so that the
// caller's request finishing (or its transaction rolling back later) does not
// cancel delivery.
func (d *asyncDispatcher) Dispatch(req CreateRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if _, err := d.service.Create(ctx, req); err != nil {
			log.Printf("notification: dispatch %s to %s failed: %v", req.Type, req.ReceiverID, err)
		}
	}()
}
