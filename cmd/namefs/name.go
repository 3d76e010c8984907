package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/namefs/names"
)

func newNameCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Parse, escape and render names",
	}

	cmd.AddCommand(newNameParseCommand(opts))
	cmd.AddCommand(newNameEscapeCommand(opts))
	cmd.AddCommand(newNameUnescapeCommand(opts))
	cmd.AddCommand(newNameRenderCommand(opts))
	return cmd
}

// delimiterOrDefault parses flag, falling back to the configured delimiter
func delimiterOrDefault(opts *options, flag string) (rune, error) {
	if flag == "" {
		return opts.cfg.DelimiterRune(), nil
	}
	return names.ParseDelimiter(flag)
}

func newNameParseCommand(opts *options) *cobra.Command {
	var (
		delim   string
		variant string
		asTable bool
	)

	cmd := &cobra.Command{
		Use:   "parse [raw]",
		Short: "Split a delimited name into its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := delimiterOrDefault(opts, delim)
			if err != nil {
				return err
			}
			v := opts.cfg.Variant()
			if variant != "" {
				v = names.Variant(variant)
			}
			n, err := names.ParseName(v, args[0], d)
			if err != nil {
				return fmt.Errorf("failed to parse name %q: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, n.NoComponents())
			for i := range n.NoComponents() {
				c, err := n.Component(i)
				if err != nil {
					return err
				}
				rows = append(rows, []string{strconv.Itoa(i), c, names.Escape(c, d)})
			}
			if asTable {
				printTable(out, []string{"index", "component", "escaped"}, rows)
				return nil
			}

			fmt.Fprintf(out, "components: %d\n", n.NoComponents())
			for _, row := range rows {
				fmt.Fprintf(out, "  [%s] %q\n", row[0], row[1])
			}
			fmt.Fprintf(out, "data: %s\n", n.AsDataString())
			fmt.Fprintf(out, "display: %s\n", n.AsString())
			fmt.Fprintf(out, "hash: %d\n", n.HashCode())
			return nil
		},
	}

	cmd.Flags().StringVarP(&delim, "delimiter", "d", "", "Delimiter character (default from config)")
	cmd.Flags().StringVar(&variant, "variant", "", "Name representation: string or array (default from config)")
	cmd.Flags().BoolVar(&asTable, "table", false, "Print the components as a table")
	return cmd
}

func newNameEscapeCommand(opts *options) *cobra.Command {
	var delim string

	cmd := &cobra.Command{
		Use:   "escape [component]",
		Short: "Escape a single component for use in a delimited name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := delimiterOrDefault(opts, delim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), names.Escape(args[0], d))
			return nil
		},
	}

	cmd.Flags().StringVarP(&delim, "delimiter", "d", "", "Delimiter character (default from config)")
	return cmd
}

func newNameUnescapeCommand(opts *options) *cobra.Command {
	var delim string

	cmd := &cobra.Command{
		Use:   "unescape [masked]",
		Short: "Undo the escaping of a single component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := delimiterOrDefault(opts, delim)
			if err != nil {
				return err
			}
			c, err := names.Unescape(args[0], d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().StringVarP(&delim, "delimiter", "d", "", "Delimiter character (default from config)")
	return cmd
}

func newNameRenderCommand(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "render [raw]",
		Short: "Render a name for display with another delimiter",
		Long: `Render parses a name with the --from delimiter and prints its unescaped
display form joined by the --to delimiter. The output is for reading only and
does not round trip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fd, err := delimiterOrDefault(opts, from)
			if err != nil {
				return err
			}
			td, err := names.ParseDelimiter(to)
			if err != nil {
				return err
			}
			n, err := names.ParseName(opts.cfg.Variant(), args[0], fd)
			if err != nil {
				return fmt.Errorf("failed to parse name %q: %w", args[0], err)
			}
			s, err := n.AsStringWith(td)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Delimiter of the input (default from config)")
	cmd.Flags().StringVar(&to, "to", "", "Delimiter of the output")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
