package commands

import (
	"bytes"

	"github.com/spf13/cobra"

	"didwallet/internal/domain"
)

func issueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issue <type> <alias>",
		Short: "Issue a credential to a connection and print the envelope",
		Long: "Issue a credential to a connection and print the envelope.\n\n" +
			"Types: Passport, DriversLicense, TrafficAuthority, LawEnforcer.",
		Args: args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			typ, err := domain.ParseCredentialType(a[0])
			if err != nil {
				return usageErr(err)
			}
			id, err := self()
			if err != nil {
				return err
			}
			env, _, err := appCtx.Credentials.Issue(cmd.Context(), id, typ, domain.Alias(a[1]))
			if err != nil {
				return err
			}
			return printEnvelope(cmd, env)
		},
	}
}

func credentialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credentials",
		Short: "List stored credentials",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := self()
			if err != nil {
				return err
			}
			list, err := appCtx.Credentials.ListCredentials(id)
			if err != nil {
				return err
			}
			w := newTable(cmd, "ID", "TYPE", "ISSUER", "SUBJECT", "ISSUED")
			for _, c := range list {
				row(w, c.ID, c.Type, c.IssuerAlias, c.SubjectAlias, c.Issued.Format(timeLayout))
			}
			return w.Flush()
		},
	}
}

func credentialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credential <id>",
		Short: "Print a stored credential",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			id, err := self()
			if err != nil {
				return err
			}
			cred, err := appCtx.Credentials.GetCredential(id, domain.MessageID(a[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, cred)
		},
	}
}

func presentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "present <verifier> [dcem|credential-id]",
		Short: "Present a credential to a verifier and print the envelope",
		Long: "Present a credential to a verifier and print the envelope.\n\n" +
			"The credential is either a received credential envelope or the id of a\n" +
			"credential stored with hold.",
		Args: args(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			in, err := argOrStdin(cmd, a, 1, "credential")
			if err != nil {
				return err
			}
			id, err := self()
			if err != nil {
				return err
			}
			cred, err := loadCredential(id, in)
			if err != nil {
				return err
			}
			env, err := appCtx.Presentations.Present(cmd.Context(), id, cred, domain.Alias(a[0]))
			if err != nil {
				return err
			}
			return printEnvelope(cmd, env)
		},
	}
}

// loadCredential reads a credential from an envelope or from the store.
func loadCredential(self domain.Identity, in []byte) (domain.Credential, error) {
	if !bytes.HasPrefix(in, []byte("{")) {
		return appCtx.Credentials.GetCredential(self, domain.MessageID(in))
	}
	opened, err := appCtx.Messages.Read(self, in)
	if err != nil {
		return domain.Credential{}, err
	}
	return domain.ParseCredential(opened.Plaintext)
}

func presentationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presentations",
		Short: "List stored presentations",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := self()
			if err != nil {
				return err
			}
			list, err := appCtx.Presentations.ListPresentations(id)
			if err != nil {
				return err
			}
			w := newTable(cmd, "ID", "TYPE", "HOLDER", "CREDENTIALS", "CREATED")
			for _, p := range list {
				row(w, p.ID, p.Type, p.HolderAlias, p.Credentials, p.Created.Format(timeLayout))
			}
			return w.Flush()
		},
	}
}

func presentationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presentation <id>",
		Short: "Print a stored presentation",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			id, err := self()
			if err != nil {
				return err
			}
			vp, err := appCtx.Presentations.GetPresentation(id, domain.MessageID(a[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, vp)
		},
	}
}
