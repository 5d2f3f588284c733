package notify

import (
	"context"
	"log"
	"time"
)

// Sender delivers a single push message.
type Sender interface {
	Send(ctx context.Context, p Push) error
}

// Dispatcher sends pushes off the request path. Delivery is best-effort:
// a full queue drops the message and a failed send is only logged, so
// booking creation never waits on, or fails because of, a notification.
type Dispatcher struct {
	sender  Sender
	queue   chan Push
	timeout time.Duration
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		queue:   make(chan Push, 100),
		timeout: 15 * time.Second,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for p := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sender.Send(ctx, p); err != nil {
			log.Println("notify error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(p Push) {
	select {
	case d.queue <- p:
	default:
		// queue full: drop rather than block the API
		log.Println("notify queue full, dropping push")
	}
}
