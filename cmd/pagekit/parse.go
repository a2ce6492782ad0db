package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-pagekit"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		logos  map[string]string
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "parse [TEXT]",
		Short: "Parse inline markup and print HTML or nodes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}
			nodes := pagekit.Parse(text, logos)
			if asJSON {
				return a.writeJSON(nodes)
			}
			fmt.Fprintln(a.out, pagekit.RenderHTML(nodes))
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&logos, "logo", nil, "chip logo as NAME=URL, repeatable")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print nodes as JSON")
	return cmd
}

func readText(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case strings.TrimSpace(file) != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
