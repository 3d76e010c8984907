package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/namefs/filesystem"
	"github.com/brettbedarf/namefs/internal/util"
	"github.com/brettbedarf/namefs/requests"
)

func newTreeCommand(opts *options) *cobra.Command {
	var find string

	cmd := &cobra.Command{
		Use:   "tree [defs-file]",
		Short: "Build a tree from node definitions and print it",
		Long: `Tree reads a YAML or JSON list of node definitions, builds the tree and
prints the full name of every node. With --find only nodes with the given base
name are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.GetLogger("main")

			reqs, err := requests.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load node definitions %s: %w", args[0], err)
			}
			tree, err := filesystem.NewTree(opts.cfg)
			if err != nil {
				return err
			}
			for _, req := range reqs {
				if _, err := tree.Apply(req); err != nil {
					return fmt.Errorf("failed to add %s %q: %w", req.Type, req.Path, err)
				}
			}
			if err := tree.CheckInvariants(); err != nil {
				return err
			}
			logger.Info().Int("nodes", tree.Len()).Msg("Tree built")

			if cmd.Flags().Changed("find") {
				found, err := tree.Find(find)
				if err != nil {
					return err
				}
				return printNodes(cmd.OutOrStdout(), found.Nodes())
			}

			var nodes []filesystem.Node
			if err := tree.Walk(func(n filesystem.Node, _ int) error {
				if _, isRoot := n.(*filesystem.RootNode); !isRoot {
					nodes = append(nodes, n)
				}
				return nil
			}); err != nil {
				return err
			}
			return printNodes(cmd.OutOrStdout(), nodes)
		},
	}

	cmd.Flags().StringVar(&find, "find", "", "Only print nodes with this base name")
	return cmd
}

// printNodes writes one sorted line per node: a kind marker,
// the escaped full name and for links the target's full name
func printNodes(w io.Writer, nodes []filesystem.Node) error {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		line, err := describe(n)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	slices.Sort(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func describe(n filesystem.Node) (string, error) {
	fn, err := n.FullName()
	if err != nil {
		return "", err
	}
	switch v := n.(type) {
	case *filesystem.RootNode:
		return "d /", nil
	case *filesystem.Directory:
		return "d " + fn.AsDataString(), nil
	case *filesystem.File:
		return fmt.Sprintf("f %s (%d bytes)", fn.AsDataString(), v.Attr().Size), nil
	case *filesystem.Link:
		tn, err := v.TargetNode().FullName()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("l %s -> %s", fn.AsDataString(), tn.AsDataString()), nil
	default:
		return "? " + fn.AsDataString(), nil
	}
}
