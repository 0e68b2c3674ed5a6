package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"didwallet/internal/domain"
	"didwallet/internal/log"
)

// errNotVerified is returned when a presentation completes verification
// without passing it.
var errNotVerified = errors.New("presentation not verified")

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <issuer> <subject> [dcem]",
		Short: "Verify a received presentation against the expected issuer and subject",
		Args:  args(cobra.RangeArgs(2, 3)),
		RunE: func(cmd *cobra.Command, a []string) error {
			raw, err := argOrStdin(cmd, a, 2, "envelope")
			if err != nil {
				return err
			}
			id, err := self()
			if err != nil {
				return err
			}
			res, err := appCtx.Verifier.Verify(cmd.Context(), id, domain.Alias(a[0]), domain.Alias(a[1]), raw)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			if !res.OK() {
				return fmt.Errorf("%w: %s", errNotVerified, res.Status)
			}
			logger.Info("verified", log.WithMessageID(res.MessageID.String()), log.WithPath(res.Path))
			return nil
		},
	}
}
