package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"didwallet/internal/domain"
	"didwallet/internal/protocol/envelope"
	"didwallet/internal/services/identity"
)

// args wraps a positional-argument validator so its failures exit as usage errors.
func args(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		return usageErr(v(cmd, a))
	}
}

// argOrStdin returns args[i], or all of stdin when the argument is absent.
func argOrStdin(cmd *cobra.Command, a []string, i int, name string) ([]byte, error) {
	if len(a) > i {
		return []byte(a[i]), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, usageErr(fmt.Errorf("missing %s: pass it as an argument or on stdin", name))
	}
	return b, nil
}

// badInput turns errors caused by malformed user input into usage errors.
func badInput(err error) error {
	for _, target := range []error{
		identity.ErrWeakPassphrase,
		identity.ErrInvalidMnemonic,
		domain.ErrInvalidAlias,
		domain.ErrUnsupportedDID,
		domain.ErrUnknownCredentialType,
	} {
		if errors.Is(err, target) {
			return usageErr(err)
		}
	}
	return err
}

func self() (domain.Identity, error) {
	if appCtx == nil {
		return domain.Identity{}, errors.New("wallet not initialised")
	}
	return appCtx.Self()
}

func printEnvelope(cmd *cobra.Command, env domain.Envelope) error {
	raw, err := envelope.Marshal(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func newTable(cmd *cobra.Command, header ...any) *tabwriter.Writer {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	row(w, header...)
	return w
}

func row(w io.Writer, cols ...any) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

const timeLayout = "2006-01-02 15:04:05Z07:00"
