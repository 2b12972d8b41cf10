package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luismrgarcia/zigbee2mqtt/internal/docgen"
	"github.com/luismrgarcia/zigbee2mqtt/internal/gitops"
	"github.com/luismrgarcia/zigbee2mqtt/internal/storage"
)

func generateCmd(opts *options) *cobra.Command {
	var commit bool
	var message string

	c := &cobra.Command{
		Use:   "generate <output-dir>",
		Short: "Write Supported-devices.md and Integrating-with-Home-Assistant.md",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("please specify an output directory")
			}
			return cobra.ExactArgs(1)(nil, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.load()
			if err != nil {
				return err
			}

			assembler := docgen.NewAssembler(in.cfg, opts.logger)
			docs, genErr := assembler.Generate(in.reg, in.mapping)

			writer := storage.NewDocumentWriter(args[0])
			results, err := writer.WriteAll(cmd.Context(), docs)
			if err != nil {
				return errors.Join(genErr, fmt.Errorf("failed to write documents: %w", err))
			}

			out := cmd.OutOrStdout()
			paths := make([]string, 0, len(results))
			for _, r := range results {
				state := "unchanged"
				if r.Changed {
					state = "written"
				}
				fmt.Fprintf(out, "%s: %s\n", state, r.Path)
				opts.logger.Info("document", "name", r.Name, "path", r.Path, "changed", r.Changed)
				paths = append(paths, r.Path)
			}

			if commit && len(paths) > 0 {
				repo, err := gitops.OpenRepository(writer.Dir())
				if err != nil {
					return errors.Join(genErr, err)
				}

				published, err := repo.CommitDocuments(paths, message, gitops.Signature{
					Name:  in.cfg.Git.AuthorName,
					Email: in.cfg.Git.AuthorEmail,
				})
				if err != nil {
					return errors.Join(genErr, err)
				}

				if published.Committed {
					summary, err := commitSummary(repo)
					if err != nil {
						return errors.Join(genErr, err)
					}
					fmt.Fprintf(out, "committed %d file(s) %s: %s\n", len(published.Files), summary, published.Hash)
				} else {
					fmt.Fprintln(out, "nothing to commit")
				}
			}

			if genErr != nil {
				opts.logger.Error("generation incomplete", "err", genErr)
			}
			return genErr
		},
	}

	c.Flags().BoolVar(&commit, "commit", false, "commit changed documents in the git repository containing the output directory")
	c.Flags().StringVarP(&message, "message", "m", gitops.DefaultCommitMessage, "commit message used with --commit")

	return c
}

// commitSummary describes where HEAD now is, e.g.
// `to master in /srv/wiki ("Update docs")`
func commitSummary(repo *gitops.Repository) (string, error) {
	branch, err := repo.CurrentBranch()
	if err != nil {
		return "", err
	}

	head, err := repo.HeadCommit()
	if err != nil {
		return "", err
	}

	subject, _, _ := strings.Cut(strings.TrimSpace(head.Message), "\n")
	return fmt.Sprintf("to %s in %s (%q)", branch, repo.Root(), subject), nil
}
