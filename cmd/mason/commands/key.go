package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key <target>",
		Short: "Print the rule key of a target",
		Long: `Computes and prints the rule key of a target without executing anything.
With --explain, every field contribution to the digest is listed, which helps
diagnose unexpected cache misses between two checkouts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explain, _ := cmd.Flags().GetBool("explain")
			return c.printKey(cmd, args[0], explain)
		},
	}
	cmd.Flags().BoolP("explain", "e", false, "List every field contribution to the digest")
	return cmd
}

func (c *CLI) printKey(cmd *cobra.Command, targetName string, explain bool) error {
	target, err := domain.ParseTarget(targetName)
	if err != nil {
		return err
	}

	rules, err := c.components.Loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load build declarations")
	}
	rule, err := rules.Get(target)
	if err != nil {
		return err
	}

	// Dependencies contribute their finalized keys, so everything declared
	// before the target is fingerprinted first. Declaration order guarantees
	// dependencies precede their dependents.
	for _, r := range rules.Ordered() {
		if r.Target == target {
			break
		}
		if _, err := c.components.Keys.BuildKey(r); err != nil {
			return err
		}
	}

	if !explain {
		key, err := c.components.Keys.BuildKey(rule)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", rule.Target.String(), key.String())
		return nil
	}

	key, capture, err := c.components.Keys.ExplainKey(rule)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", rule.Target.String(), key.String())
	fmt.Fprint(cmd.OutOrStdout(), capture.Dump())
	return nil
}
