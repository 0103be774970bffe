package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/open-ug/cloudnative-kampala/internal/events"
)

var (
	eventsFile   string
	eventsStatus string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the events catalog",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events in catalog order",
	RunE:  runEventsList,
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a single event as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsShow,
}

func init() {
	eventsCmd.PersistentFlags().StringVar(&eventsFile, "file", "", "events JSON file (defaults to the built-in catalog)")
	eventsListCmd.Flags().StringVar(&eventsStatus, "status", "", "only list events with this status (upcoming, past, ongoing)")
	eventsCmd.AddCommand(eventsListCmd, eventsShowCmd)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	catalog, err := events.Open(eventsFile)
	if err != nil {
		return err
	}

	list := catalog.All()
	if eventsStatus != "" {
		status, err := events.ParseStatus(eventsStatus)
		if err != nil {
			return err
		}
		list = catalog.ByStatus(status)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tTITLE")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.FormattedDate(), e.Status, e.Title)
	}
	return tw.Flush()
}

func runEventsShow(cmd *cobra.Command, args []string) error {
	catalog, err := events.Open(eventsFile)
	if err != nil {
		return err
	}

	e, ok := catalog.Find(args[0])
	if !ok {
		return fmt.Errorf("event %q not found", args[0])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
