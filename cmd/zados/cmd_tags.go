package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/state"
	"github.com/angelina-gm1999/zados/internal/symbolic"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Work with the symbolic modulation grammar",
		Long: `Encode, decode and list the symbolic tags used to describe
modulation events as NT→Receptor:Modifier triplets, optionally gated on
an oscillation band as band{NT→Receptor:Modifier}.`,
	}

	cmd.AddCommand(
		newTagsListCmd(),
		newTagsEncodeCmd(),
		newTagsDecodeCmd(),
	)

	return cmd
}

func newTagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tag vocabularies",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			if jsonOut {
				type ntEntry struct {
					Tag  string `json:"tag"`
					Name string `json:"name"`
				}
				type recEntry struct {
					Tag   string `json:"tag"`
					Short string `json:"short"`
				}
				out := struct {
					Neurotransmitters []ntEntry  `json:"neurotransmitters"`
					Receptors         []recEntry `json:"receptors"`
					Modifiers         []string   `json:"modifiers"`
					Components        []string   `json:"components"`
				}{}
				for _, t := range symbolic.NeurotransmitterTags() {
					out.Neurotransmitters = append(out.Neurotransmitters, ntEntry{Tag: string(t), Name: t.FullName()})
				}
				for _, t := range symbolic.ReceptorTags() {
					out.Receptors = append(out.Receptors, recEntry{Tag: string(t), Short: t.Short()})
				}
				for _, t := range symbolic.ModifierTags() {
					out.Modifiers = append(out.Modifiers, string(t))
				}
				for _, t := range symbolic.ComponentTags() {
					out.Components = append(out.Components, string(t))
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Neurotransmitters:")
			for _, t := range symbolic.NeurotransmitterTags() {
				fmt.Fprintf(w, "  %-6s %s\n", t, t.FullName())
			}
			fmt.Fprintln(w, "\nReceptors:")
			for _, t := range symbolic.ReceptorTags() {
				fmt.Fprintf(w, "  %-10s short: %s\n", t, t.Short())
			}
			fmt.Fprintln(w, "\nModifiers:")
			for _, t := range symbolic.ModifierTags() {
				fmt.Fprintf(w, "  %s\n", t)
			}
			fmt.Fprintln(w, "\nComponents:")
			for _, t := range symbolic.ComponentTags() {
				fmt.Fprintf(w, "  %s\n", t)
			}
			return nil
		},
	}
}

func newTagsEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <nt> <receptor> <modifier>",
		Short: "Encode a modulation triplet",
		Long: `Encode a neurotransmitter, receptor and modifier as a symbolic
triplet. The receptor may be given as its full tag (DA_D2) or its short
form (D2).

Examples:
  zados tags encode DA DA_D2 ↑density
  zados tags encode SEROTONIN 5HT_1A desensitized --gate theta`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			gate, _ := cmd.Flags().GetString("gate")

			nt, err := symbolic.ParseNeurotransmitterTag(args[0])
			if err != nil {
				return err
			}
			rec, err := parseReceptorArg(args[1])
			if err != nil {
				return err
			}
			mod, err := symbolic.ParseModifierTag(args[2])
			if err != nil {
				return err
			}

			tr := symbolic.Triplet{NT: nt, Receptor: rec, Modifier: mod}
			if gate != "" {
				band, err := state.ParseBand(gate)
				if err != nil {
					return fmt.Errorf("gate: %w", err)
				}
				tr.Gate = band
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"encoded": tr.Encode()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tr.Encode())
			return nil
		},
	}

	cmd.Flags().String("gate", "", "Oscillation band the event is gated on")

	return cmd
}

func newTagsDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <triplet>",
		Short: "Decode an encoded triplet",
		Long: `Decode an encoded triplet back into its typed parts.

Examples:
  zados tags decode "DA→D2:↑density"
  zados tags decode "theta{DA→D2:↑density}"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			tr, err := symbolic.Parse(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(tr)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Neurotransmitter: %s (%s)\n", tr.NT, tr.NT.FullName())
			fmt.Fprintf(w, "Receptor:         %s\n", tr.Receptor)
			fmt.Fprintf(w, "Modifier:         %s\n", tr.Modifier)
			if tr.Gate != "" {
				fmt.Fprintf(w, "Gate:             %s\n", tr.Gate)
			}
			return nil
		},
	}
}

// parseReceptorArg accepts a receptor as either its full tag or its
// short form.
func parseReceptorArg(s string) (symbolic.ReceptorTag, error) {
	if rec, err := symbolic.ParseReceptorTag(s); err == nil {
		return rec, nil
	}
	return symbolic.ParseReceptorShort(s)
}
