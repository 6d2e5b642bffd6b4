package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive shell: feed messages through the sponge",
	Long: `Reads messages from stdin, classifies each one, and runs it through
the belief-revision state machine. Type /state to inspect opinions,
/insight <text> to record an insight for the next reflection, /quit to
exit.`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	svc, err := newService(logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sponge v%d, %d interactions so far. /state, /insight, /quit\n",
		svc.Version(), svc.InteractionCount())
	fmt.Fprintf(out, "%s\n\n", svc.Snapshot())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/state":
			printState(out, svc)
			continue
		case strings.HasPrefix(line, "/insight "):
			if err := svc.RecordInsight(strings.TrimPrefix(line, "/insight ")); err != nil {
				fmt.Fprintf(out, "  insight rejected: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "  insight recorded, version now %d\n", svc.Version())
			continue
		}

		result, err := svc.ProcessMessage(cmd.Context(), line)
		if err != nil {
			return err
		}

		if result.Vetoed {
			fmt.Fprintln(out, "  (classification vetoed, no belief change)")
			continue
		}
		for _, c := range result.Contractions {
			fmt.Fprintf(out, "  contracted %q by %.3f\n", c.Topic, c.Step)
		}
		for _, u := range result.Staged {
			fmt.Fprintf(out, "  staged %+.3f on %q, due at interaction %d\n",
				u.Magnitude, u.Topic, u.DueInteraction)
		}
		for _, topic := range result.CommittedTopics {
			fmt.Fprintf(out, "  committed staged update on %q\n", topic)
		}
		if result.Reflected {
			fmt.Fprintf(out, "  reflected; new snapshot:\n  %s\n", svc.Snapshot())
		}
	}

	return scanner.Err()
}
