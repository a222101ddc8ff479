package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathquiz/internal/jsontree"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Re-render a document in either form and list its leaf paths",
	Long: `Parse a document written in the indented (JSON) or compact form and
print it in the requested form, followed by the dotted path of every leaf.
Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeVal, _ := cmd.Flags().GetString("mode")
		mode, err := jsontree.ParseMode(modeVal)
		if err != nil {
			return err
		}

		var src []byte
		if args[0] == "-" {
			src, err = io.ReadAll(cmd.InOrStdin())
		} else {
			src, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		root, detected, err := jsontree.Parse(string(src))
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# parsed as %s, rendered as %s\n", detected, mode)
		fmt.Fprintln(w, jsontree.RenderBranch(root, mode))
		fmt.Fprintln(w)
		for _, p := range jsontree.LeafPaths(root) {
			n, _ := (&jsontree.Tree{Root: root}).Resolve(p)
			fmt.Fprintf(w, "%s = %s\n", p, n.(*jsontree.Leaf).Value)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("mode", "indented", "Output rendering: indented or compact")
}
