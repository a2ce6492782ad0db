package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	editorcmd "github.com/goliatone/go-pagekit/internal/commands/editor"
	"github.com/goliatone/go-pagekit/internal/document"

	"github.com/goliatone/go-pagekit"
	"github.com/spf13/cobra"
)

func newDocCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Inspect and edit the stored document",
	}
	cmd.AddCommand(
		newDocShowCmd(a),
		newDocAddCmd(a),
		newDocSetCmd(a),
		newDocRemoveCmd(a),
		newDocDuplicateCmd(a),
		newDocMoveCmd(a),
		newDocDropCmd(a),
		newDocRenderCmd(a),
	)
	return cmd
}

func newDocShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				return a.writeJSON(document.ToPayload(mod.Session().Document()))
			})
		},
	}
}

func newDocAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add TYPE [VARIANT]",
		Short: "Append a block seeded with its defaults",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := editorcmd.AddBlockCommand{BlockType: args[0], Result: &editorcmd.BlockResult{}}
			if len(args) > 1 {
				msg.Variant = args[1]
			}
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				if err := mod.Commands().Add.Execute(cmd.Context(), msg); err != nil {
					return err
				}
				fmt.Fprintln(a.out, msg.Result.ID)
				return nil
			})
		},
	}
}

func newDocSetCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "set ID KEY=VALUE...",
		Short: "Set block props and commit the edit",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				block, ok := mod.Session().Block(args[0])
				if !ok {
					return fmt.Errorf("block %s not found", args[0])
				}
				props := block.Props
				if props == nil {
					props = document.Props{}
				}
				for _, pair := range args[1:] {
					key, raw, found := strings.Cut(pair, "=")
					if !found || strings.TrimSpace(key) == "" {
						return fmt.Errorf("expected KEY=VALUE, got %q", pair)
					}
					props[key] = parseValue(raw, asJSON)
				}
				handlers := mod.Commands()
				if err := handlers.Update.Execute(cmd.Context(), editorcmd.UpdateBlockCommand{BlockID: args[0], Props: props}); err != nil {
					return err
				}
				return handlers.Commit.Execute(cmd.Context(), editorcmd.CommitEditCommand{Label: "cli set"})
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "decode values as JSON")
	return cmd
}

func parseValue(raw string, asJSON bool) any {
	if !asJSON {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func newDocRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				return mod.Commands().Remove.Execute(cmd.Context(), editorcmd.RemoveBlockCommand{BlockID: args[0]})
			})
		},
	}
}

func newDocDuplicateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate ID",
		Short: "Copy a block right after itself",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := editorcmd.DuplicateBlockCommand{BlockID: args[0], Result: &editorcmd.BlockResult{}}
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				if err := mod.Commands().Duplicate.Execute(cmd.Context(), msg); err != nil {
					return err
				}
				fmt.Fprintln(a.out, msg.Result.ID)
				return nil
			})
		},
	}
}

func newDocMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move the block at index FROM to index TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid FROM index: %w", err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid TO index: %w", err)
			}
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				return mod.Commands().Move.Execute(cmd.Context(), editorcmd.MoveBlockCommand{From: from, To: to})
			})
		},
	}
}

func newDocDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop DRAGGED TARGET",
		Short: "Drop block DRAGGED onto block TARGET",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				return mod.Commands().Drop.Execute(cmd.Context(), editorcmd.DropBlockCommand{DraggedID: args[0], TargetID: args[1]})
			})
		},
	}
}

func newDocRenderCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "render ID FIELD",
		Short: "Render a richtext field of a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(mod *pagekit.Module) error {
				nodes, ok := mod.Session().RichText(args[0], args[1])
				if !ok {
					return fmt.Errorf("block %s has no richtext field %q", args[0], args[1])
				}
				if asJSON {
					return a.writeJSON(nodes)
				}
				fmt.Fprintln(a.out, pagekit.RenderHTML(nodes))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print nodes as JSON")
	return cmd
}
