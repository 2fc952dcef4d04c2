package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zcbus/zcbus-go/pkg/registry"
)

// RunDetails prints the static and dynamic state of one service.
func RunDetails(r *registry.Registry, name string, asJSON bool, w io.Writer) error {
	d, err := r.Details(name)
	if err != nil {
		return fmt.Errorf("failed to read service %q: %w", name, err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	sc := d.Static
	fmt.Fprintf(w, "Service:  %s\n", sc.ServiceName)
	fmt.Fprintf(w, "ID:       %s\n", sc.ServiceID)
	fmt.Fprintf(w, "Pattern:  %s\n", sc.Pattern)
	fmt.Fprintf(w, "Version:  %s\n", sc.Version)
	fmt.Fprintf(w, "Created:  %s (%s)\n", sc.CreatedAt.Format(time.RFC3339), humanize.Time(sc.CreatedAt))
	if sc.CreatorNode != "" {
		fmt.Fprintf(w, "Creator:  %s\n", sc.CreatorNode)
	}
	fmt.Fprintf(w, "Nodes:    %d/%d\n", d.Nodes, d.MaxNodes)

	if len(sc.Attributes) > 0 {
		fmt.Fprintln(w, "Attributes:")
		for _, a := range sc.Attributes {
			fmt.Fprintf(w, "  %s\n", a)
		}
	}

	if ps := sc.PublishSubscribe; ps != nil {
		fmt.Fprintln(w, "Publish-Subscribe:")
		fmt.Fprintf(w, "  Payload:                  %s\n", ps.Payload)
		fmt.Fprintf(w, "  UserHeader:               %s\n", ps.UserHeader)
		fmt.Fprintf(w, "  MaxSubscribers:           %d\n", ps.MaxSubscribers)
		fmt.Fprintf(w, "  MaxPublishers:            %d\n", ps.MaxPublishers)
		fmt.Fprintf(w, "  MaxNodes:                 %d\n", ps.MaxNodes)
		fmt.Fprintf(w, "  HistorySize:              %d\n", ps.HistorySize)
		fmt.Fprintf(w, "  SubscriberMaxBufferSize:  %d\n", ps.SubscriberMaxBufferSize)
		fmt.Fprintf(w, "  SubscriberMaxBorrowed:    %d\n", ps.SubscriberMaxBorrowedSamples)
		fmt.Fprintf(w, "  PublisherMaxLoaned:       %d\n", ps.PublisherMaxLoanedSamples)
		fmt.Fprintf(w, "  SafeOverflow:             %t\n", ps.EnableSafeOverflow)
		fmt.Fprintf(w, "  UnableToDeliver:          %s\n", ps.UnableToDeliverStrategy)
	}
	return nil
}
