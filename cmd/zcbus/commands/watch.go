package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/zcbus/zcbus-go/pkg/registry"
)

// RunWatch prints services as they appear and disappear until ctx is done.
func RunWatch(ctx context.Context, r *registry.Registry, w io.Writer) error {
	watcher, err := r.Watch()
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintln(w, "Watching for services (Ctrl+C to stop)...")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			formatWatchEvent(w, ev)
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "watch error: %v\n", err)
		}
	}
}

func formatWatchEvent(w io.Writer, ev registry.WatchEvent) {
	ts := time.Now().Format("15:04:05.000")
	if ev.Static == nil {
		fmt.Fprintf(w, "%s %-7s %s\n", ts, ev.Op, shortenID(string(ev.ID)))
		return
	}
	payload := "-"
	if ps := ev.Static.PublishSubscribe; ps != nil {
		payload = ps.Payload.TypeName
	}
	fmt.Fprintf(w, "%s %-7s %s %s payload=%s\n", ts, ev.Op, shortenID(string(ev.ID)), ev.Static.ServiceName, payload)
}
