package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didwallet/internal/domain"
)

func didCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "did [alias]",
		Short: "Print the DID of a connection (default self)",
		Args:  args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			alias := domain.SelfAlias
			if len(a) == 1 {
				alias = domain.Alias(a[0])
			}
			did, err := appCtx.Connections.ResolveDID(alias)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), did)
			return nil
		},
	}
}

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <alias> <did>",
		Short: "Name a peer DID",
		Args:  args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			res, err := appCtx.Connections.Connect(domain.Alias(a[0]), domain.DID(a[1]))
			if err != nil {
				return badInput(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s -> %s\n", res.Status, res.Alias, res.DID)
			if res.PreviousDID != "" {
				fmt.Fprintf(out, "replaced DID: %s\n", res.PreviousDID)
			}
			if res.PreviousAlias != "" {
				fmt.Fprintf(out, "replaced alias: %s\n", res.PreviousAlias)
			}
			for _, p := range res.Paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
}

func didsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dids",
		Short: "List connections",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			conns, err := appCtx.Connections.ListConnections()
			if err != nil {
				return err
			}
			w := newTable(cmd, "ALIAS", "DID")
			for _, c := range conns {
				row(w, c.Alias, c.DID)
			}
			return w.Flush()
		},
	}
}
