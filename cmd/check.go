package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-ug/cloudnative-kampala/internal/github"
	"github.com/open-ug/cloudnative-kampala/internal/proposal"
)

var checkProposalCmd = &cobra.Command{
	Use:   "check-proposal <file.json>",
	Short: "Validate a proposal and preview the issue it would file",
	Long: `check-proposal runs a proposal JSON document through the same
validation the intake endpoint uses. Valid proposals print the issue title
and body; invalid ones print each failing field and exit non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckProposal,
}

func runCheckProposal(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open proposal: %w", err)
	}
	defer f.Close()

	p, err := proposal.Decode(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if errs := proposal.Validate(*p); !errs.Valid() {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(out, "%s: %s\n", field, errs[field])
		}
		return fmt.Errorf("proposal has %d invalid field(s)", len(errs))
	}

	// Preview exactly what the intake endpoint would file.
	title := github.SanitizeIssueText(proposal.IssueTitle(*p))
	body := github.SanitizeIssueText(proposal.IssueBody(*p, proposal.Meta{ReceivedAt: time.Now()}))
	fmt.Fprintf(out, "%s\n\n%s\n", title, body)
	return nil
}
