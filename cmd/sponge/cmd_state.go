package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/driftlab/sponge/internal/service"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the sponge's current opinions, beliefs, and diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		svc, err := newService(logger)
		if err != nil {
			return err
		}

		printState(cmd.OutOrStdout(), svc)
		return nil
	},
}

func printState(out io.Writer, svc *service.SpongeService) {
	fmt.Fprintf(out, "version %d | interaction %d | tone %s\n",
		svc.Version(), svc.InteractionCount(), svc.Tone())
	fmt.Fprintf(out, "snapshot: %s\n", svc.Snapshot())

	opinions := svc.OpinionVectors()
	meta := svc.BeliefMeta()

	topics := make([]string, 0, len(opinions))
	for topic := range opinions {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	if len(topics) > 0 {
		fmt.Fprintln(out, "\nopinions:")
		for _, topic := range topics {
			m := meta[topic]
			fmt.Fprintf(out, "  %-24s %+.3f  (confidence %.2f, evidence %d)\n",
				topic, opinions[topic], m.Confidence, m.EvidenceCount)
		}
	}

	if staged := svc.StagedUpdates(); len(staged) > 0 {
		fmt.Fprintln(out, "\nstaged:")
		for _, u := range staged {
			fmt.Fprintf(out, "  %-24s %+.3f  due @%d (%s)\n",
				u.Topic, u.Magnitude, u.DueInteraction, u.Provenance)
		}
	}

	if contradictions := svc.Contradictions(); len(contradictions) > 0 {
		fmt.Fprintln(out, "\nunresolved contradictions:")
		for _, c := range contradictions {
			fmt.Fprintf(out, "  %-24s position %+.2f vs staged %+.3f\n",
				c.Topic, c.Position, c.StagedMagnitude)
		}
	}

	if entrenched := svc.Entrenched(); len(entrenched) > 0 {
		fmt.Fprintln(out, "\nentrenched:")
		for _, e := range entrenched {
			fmt.Fprintf(out, "  %-24s confidence %.2f, stable %d interactions\n",
				e.Topic, e.Confidence, e.InteractionsStable)
		}
	}

	sig := svc.BehavioralSignature()
	fmt.Fprintf(out, "\ndisagreement rate: %.3f\n", sig.DisagreementRate)
}
