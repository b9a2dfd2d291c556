package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"
)

var inspectDepth int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.sexp>",
	Short: "Dump the structure of an s-expression file",
	Long: `Parse an s-expression file and print its node tree with element
counts, followed by a frequency table of node tags. Works on
'opc export' output and any other well-formed s-expression data.

Examples:
  opc inspect house.sexp
  opc inspect --depth 5 house.sexp`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectDepth, "depth", 3, "maximum nesting depth to print")
}

func runInspect(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	sexps, err := sexp.Parse(file)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	fmt.Printf("Parsed %d top-level s-expression(s)\n\n", len(sexps))

	tags := make(map[string]int)
	for _, s := range sexps {
		tallyTags(s, tags)
	}
	for _, s := range sexps {
		dumpNode(s, 0)
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tags[names[i]] != tags[names[j]] {
			return tags[names[i]] > tags[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Println("\nNode tags:")
	for _, name := range names {
		fmt.Printf("  %-12s %d\n", name, tags[name])
	}
	return nil
}

// tallyTags counts every tagged node in the tree, regardless of the
// print depth cutoff.
func tallyTags(s sexp.Sexp, tags map[string]int) {
	if s == nil || s.IsLeaf() {
		return
	}
	kids := nodeChildren(s)
	if len(kids) > 0 && kids[0].IsLeaf() {
		tags[fmt.Sprintf("%s", kids[0])]++
	}
	for _, kid := range kids {
		tallyTags(kid, tags)
	}
}

func dumpNode(s sexp.Sexp, depth int) {
	if s == nil || depth >= inspectDepth {
		return
	}
	indent := strings.Repeat("  ", depth)
	if s.IsLeaf() {
		fmt.Printf("%s%s\n", indent, s)
		return
	}

	kids := nodeChildren(s)
	tag := "?"
	if len(kids) > 0 && kids[0].IsLeaf() {
		tag = fmt.Sprintf("%s", kids[0])
	}
	nested := 0
	for _, kid := range kids {
		if !kid.IsLeaf() {
			nested++
		}
	}
	if nested == 0 {
		fmt.Printf("%s%s\n", indent, compact(fmt.Sprintf("%s", s), 76))
		return
	}

	fmt.Printf("%s(%s  [%d elems, %d leaves]\n", indent, tag, len(kids), s.LeafCount())
	for i, kid := range kids {
		if i == 0 && kid.IsLeaf() {
			continue
		}
		dumpNode(kid, depth+1)
	}
	fmt.Printf("%s)\n", indent)
}

// nodeChildren flattens the cons-style Head/Tail chain into a slice.
func nodeChildren(s sexp.Sexp) []sexp.Sexp {
	var out []sexp.Sexp
	for cur := s; cur != nil && !cur.IsLeaf(); cur = cur.Tail() {
		h := cur.Head()
		if h == nil {
			break
		}
		out = append(out, h)
	}
	return out
}

func compact(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
