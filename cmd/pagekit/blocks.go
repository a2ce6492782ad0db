package main

import (
	"github.com/goliatone/go-pagekit"
	"github.com/spf13/cobra"
)

type catalogEntry struct {
	Type     string   `json:"type"`
	Variants []string `json:"variants"`
}

func newBlocksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "List the block catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := pagekit.NewRegistry()
			entries := make([]catalogEntry, 0)
			for _, blockType := range registry.Types() {
				entries = append(entries, catalogEntry{Type: blockType, Variants: registry.Variants(blockType)})
			}
			return a.writeJSON(entries)
		},
	}
}
