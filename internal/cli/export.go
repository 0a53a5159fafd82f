package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geoxml/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	pipeline.Options
	noCache bool // skip the rendered-output cache entirely
	stdout  bool // write XML to stdout instead of a file
}

// exportCommand creates the export command, the main entry point: geometry
// file in, XML file out.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a geometry file to XML",
		Long: `Export reads a geometry file and writes one XML element per emitter,
attribute and value. The format is chosen by extension: .json, .yaml, .yml,
.toml, .arrow or .ipc. An existing output file is replaced.`,
		Example: `  geoxml export emitters.json
  geoxml export emitters.arrow -o fx/emitters.xml --layout attr
  geoxml export emitters.yaml --count-attribute numParticles --on-unknown error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cfg.apply(cmd.Flags(), &opts.Options, &opts.noCache)
			opts.Input = args[0]
			return c.runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default filename.xml)")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "XML layout: text (default), attr")
	cmd.Flags().StringVar(&opts.CountAttrib, "count-attribute", "", "detail attribute holding the emitter count (default numEmitters)")
	cmd.Flags().StringVar(&opts.OnUnknown, "on-unknown", "", "attributes of unsupported types: skip, warn (default), error")
	cmd.Flags().BoolVar(&opts.Declaration, "declaration", false, "prepend an XML declaration")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild even when a cached export exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the export cache")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write XML to stdout instead of a file")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, opts exportOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.NoWrite = opts.stdout
	prog := newProgress(c.Logger)
	res, err := runner.Execute(cmd.Context(), opts.Options)
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err := os.Stdout.Write(res.XML)
		return err
	}

	prog.done(fmt.Sprintf("Exported %d emitters", res.Stats.Emitters))
	printSuccess("Exported %s", opts.Input)
	printStats(res.Stats, res.CacheInfo.Hit)
	printFile(res.Output)
	if res.Stats.Skipped > 0 {
		printWarning("%d attribute(s) skipped for unsupported types", res.Stats.Skipped)
	}
	printNextStep("Inspect it", "geoxml inspect "+res.Output)
	return nil
}
