package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var mnemonic string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the wallet identity, or recover it from a mnemonic",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				created bool
				err     error
			)
			if mnemonic != "" {
				_, created, err = appCtx.Identity.RecoverIdentity(passphrase, mnemonic)
			} else {
				_, created, err = appCtx.Identity.EnsureIdentity(passphrase)
			}
			if err != nil {
				return badInput(err)
			}

			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}
			fp, err := appCtx.Identity.FingerprintIdentity(passphrase)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "Identity created.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Identity exists.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DID: %s\nFingerprint: %s\n", id.DID, fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "recover the identity from a 24-word BIP39 mnemonic")
	return cmd
}

func docCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc",
		Short: "Print the wallet's DID document",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := appCtx.Identity.SelfDocument(passphrase)
			if err != nil {
				return err
			}
			return printJSON(cmd, doc)
		},
	}
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print identity fingerprint",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fp, err := appCtx.Identity.FingerprintIdentity(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the identity seed as a BIP39 mnemonic",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			words, err := appCtx.Identity.Mnemonic(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), words)
			return nil
		},
	}
}
