package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geoxml/pkg/geo"
	gxio "github.com/matzehuels/geoxml/pkg/io"
	"github.com/matzehuels/geoxml/pkg/tree"
)

// attribsCommand lists what a geometry file declares and which attributes an
// export would keep.
func (c *CLI) attribsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attribs [file]",
		Short: "List the detail and point attributes of a geometry file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gxio.ImportGeometry(args[0])
			if err != nil {
				return err
			}
			printAttribs(args[0], g)
			return nil
		},
	}
}

func printAttribs(path string, g *geo.Geometry) {
	printInfo("%s: %d points", path, g.NumPoints())

	names := g.DetailNames()
	if len(names) > 0 {
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			l, _ := g.Detail(name)
			rows = append(rows, []string{name, l.Kind.String(), listText(l)})
		}
		printTable([]string{"Detail", "Type", "Value"}, rows)
	}

	attribs := g.PointAttributes()
	rows := make([][]string, 0, len(attribs))
	for _, a := range attribs {
		exported := StyleSuccess.Render("yes")
		if !a.Kind.Exportable() {
			exported = StyleWarning.Render("no")
		}
		rows = append(rows, []string{a.Name, a.Kind.String(), exported})
	}
	printTable([]string{"Point attribute", "Type", "Exported"}, rows)

	if n, err := g.EmitterCount(); err != nil {
		printWarning("%v", err)
	} else {
		printKeyValue("Emitters", strconv.Itoa(n))
	}
}

// listText renders a short list for display.
func listText(l geo.List) string {
	var parts []string
	switch l.Kind {
	case geo.KindInt:
		for _, v := range l.Ints {
			parts = append(parts, tree.FormatInt(v))
		}
	case geo.KindFloat:
		for _, v := range l.Floats {
			parts = append(parts, tree.FormatFloat(v))
		}
	case geo.KindString:
		for _, v := range l.Strings {
			parts = append(parts, strconv.Quote(v))
		}
	}
	const limit = 8
	if len(parts) > limit {
		parts = append(parts[:limit], "…")
	}
	return strings.Join(parts, ", ")
}
