package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// RunList prints one line per published service.
func RunList(r *registry.Registry, w io.Writer) error {
	services, err := r.List()
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}
	if len(services) == 0 {
		fmt.Fprintln(w, "No services.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tPAYLOAD\tHEADER\tNODES\tCREATED")
	for _, sc := range services {
		nodes := "-"
		if d, err := r.DetailsByID(sc.ServiceID); err == nil {
			nodes = fmt.Sprintf("%d/%d", d.Nodes, d.MaxNodes)
		}

		payload, header := "-", "-"
		if ps := sc.PublishSubscribe; ps != nil {
			payload = ps.Payload.TypeName
			if ps.Payload.Variant == typedesc.Dynamic {
				payload += "[]"
			}
			header = ps.UserHeader.TypeName
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			sc.ServiceName, shortenID(string(sc.ServiceID)), payload, header, nodes, humanize.Time(sc.CreatedAt))
	}
	return tw.Flush()
}

func shortenID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
