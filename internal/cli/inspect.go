package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	gxio "github.com/matzehuels/geoxml/pkg/io"
	"github.com/matzehuels/geoxml/pkg/tree"
)

type inspectOpts struct {
	emitter   int
	attribute string
	index     int
}

// inspectCommand summarizes an exported XML file or looks up one value in it.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{emitter: -1}

	cmd := &cobra.Command{
		Use:   "inspect [file.xml]",
		Short: "Summarize an exported XML file or look up a value",
		Example: `  geoxml inspect filename.xml
  geoxml inspect filename.xml --emitter 0
  geoxml inspect filename.xml --emitter 0 --attribute id --index 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := gxio.ImportXML(args[0])
			if err != nil {
				return err
			}
			return runInspect(args[0], doc, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.emitter, "emitter", "e", -1, "emitter index to show")
	cmd.Flags().StringVarP(&opts.attribute, "attribute", "a", "", "attribute to look up (requires --emitter)")
	cmd.Flags().IntVarP(&opts.index, "index", "i", 0, "value index for --attribute")

	return cmd
}

func runInspect(path string, doc *tree.Document, opts inspectOpts) error {
	if opts.attribute != "" {
		if opts.emitter < 0 {
			return fmt.Errorf("--attribute requires --emitter")
		}
		v, err := doc.Lookup(opts.emitter, opts.attribute, opts.index)
		if err != nil {
			return err
		}
		fmt.Println(v.Text)
		return nil
	}

	if opts.emitter >= 0 {
		e, err := doc.Emitter(opts.emitter)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(e.Attributes))
		for _, a := range e.Attributes {
			texts := make([]string, len(a.Values))
			for i, v := range a.Values {
				texts[i] = v.Text
			}
			rows = append(rows, []string{a.Name, a.Type.String(), strconv.Itoa(len(a.Values)), preview(texts)})
		}
		printInfo("emitter %d", e.Index)
		printTable([]string{"Attribute", "Type", "Values", "Preview"}, rows)
		return nil
	}

	s := doc.Stats()
	printInfo("%s", path)
	printKeyValue("Count", strconv.Itoa(doc.EmitterCount))
	printKeyValue("Emitters", strconv.Itoa(s.Emitters))
	printKeyValue("Attributes", strconv.Itoa(s.Attributes))
	printKeyValue("Values", strconv.Itoa(s.Values))
	if doc.EmitterCount != s.Emitters {
		printWarning("root declares %d emitters but holds %d", doc.EmitterCount, s.Emitters)
	}
	return nil
}

// preview joins the first few values for display.
func preview(texts []string) string {
	const limit = 4
	out := ""
	for i, t := range texts {
		if i == limit {
			return out + " …"
		}
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
