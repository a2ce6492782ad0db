package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-pagekit"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the document with one built from a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				doc, err := pagekit.ImportMarkdown(src, nil, a.cfg.Handle)
				if err != nil {
					return err
				}
				return a.writeJSON(documentSummary(doc))
			}
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				doc, err := pagekit.ImportMarkdown(src, mod.Registry(), a.cfg.Handle)
				if err != nil {
					return err
				}
				if doc.Handle != a.cfg.Handle {
					return fmt.Errorf("imported handle %q does not match --handle %q", doc.Handle, a.cfg.Handle)
				}
				mod.Session().Reset(doc)
				return a.writeJSON(documentSummary(doc))
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result without saving")
	return cmd
}

type blockSummary struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Variant string `json:"variant,omitempty"`
}

func documentSummary(doc pagekit.Document) map[string]any {
	blocks := make([]blockSummary, len(doc.Blocks))
	for i, block := range doc.Blocks {
		blocks[i] = blockSummary{ID: block.ID, Type: block.Type, Variant: block.Variant}
	}
	return map[string]any{
		"handle": doc.Handle,
		"name":   doc.Profile.Name,
		"blocks": blocks,
	}
}
