package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"didwallet/internal/domain"
	"didwallet/internal/log"
)

func writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <alias> [message]",
		Short: "Encrypt a message to a connection and print the envelope",
		Args:  args(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			msg, err := argOrStdin(cmd, a, 1, "message")
			if err != nil {
				return err
			}
			id, err := self()
			if err != nil {
				return err
			}
			env, err := appCtx.Messages.Write(id, domain.Alias(a[0]), msg)
			if err != nil {
				return err
			}
			return printEnvelope(cmd, env)
		},
	}
}

func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [dcem]",
		Short: "Decrypt an envelope addressed to this wallet",
		Args:  args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			raw, err := argOrStdin(cmd, a, 0, "envelope")
			if err != nil {
				return err
			}
			id, err := self()
			if err != nil {
				return err
			}
			opened, err := appCtx.Messages.Read(id, raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(opened.Plaintext))
			return nil
		},
	}
}

func holdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hold [dcem]",
		Short: "Validate and store a received envelope, then echo it",
		Args:  args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			raw, err := argOrStdin(cmd, a, 0, "envelope")
			if err != nil {
				return err
			}
			id, err := self()
			if err != nil {
				return err
			}
			kind, msgID, err := appCtx.Messages.Hold(id, raw)
			if err != nil {
				return err
			}
			logger.Info("held", log.WithKind(kind.String()), log.WithMessageID(msgID.String()))
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}

func messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages",
		Short: "List stored messages, oldest first",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := appCtx.Messages.ListMessages()
			if err != nil {
				return err
			}
			w := newTable(cmd, "ID", "FROM", "TO", "CREATED", "LENGTH")
			for _, m := range list {
				row(w, m.ID, m.FromAlias, m.ToAlias, m.Created.Format(timeLayout), m.Length)
			}
			return w.Flush()
		},
	}
}

func messageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message <id>",
		Short: "Print a stored message envelope",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			raw, err := appCtx.Messages.GetMessage(domain.MessageID(a[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}
