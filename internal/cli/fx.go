package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geoxml/pkg/fx"
	gxio "github.com/matzehuels/geoxml/pkg/io"
)

// fxSource selects where the parameter string comes from: the argument, or a
// string value in an exported XML file.
type fxSource struct {
	from      string
	emitter   int
	attribute string
	index     int
}

func (s *fxSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.from, "from", "", "read the parameter from an exported XML file")
	cmd.Flags().IntVarP(&s.emitter, "emitter", "e", 0, "emitter index (with --from)")
	cmd.Flags().StringVarP(&s.attribute, "attribute", "a", "", "string attribute holding the parameter (with --from)")
	cmd.Flags().IntVarP(&s.index, "index", "i", 0, "value index (with --from)")
}

func (s *fxSource) param(args []string) (string, error) {
	if s.from == "" {
		if len(args) != 1 {
			return "", fmt.Errorf("expected one parameter string or --from")
		}
		return args[0], nil
	}
	if len(args) != 0 {
		return "", fmt.Errorf("--from and a parameter argument are mutually exclusive")
	}
	if s.attribute == "" {
		return "", fmt.Errorf("--from requires --attribute")
	}
	doc, err := gxio.ImportXML(s.from)
	if err != nil {
		return "", err
	}
	return doc.String(s.emitter, s.attribute, s.index)
}

// fxCommand decodes particle effect parameter strings into JSON.
func (c *CLI) fxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Decode particle effect parameters (curves, gradients, bursts)",
	}

	cmd.AddCommand(c.fxCurveCommand())
	cmd.AddCommand(c.fxGradientCommand())
	cmd.AddCommand(c.fxBurstsCommand())

	return cmd
}

func (c *CLI) fxCurveCommand() *cobra.Command {
	var (
		src fxSource
		at  []float64
	)
	cmd := &cobra.Command{
		Use:     "curve [param]",
		Short:   "Decode a curve parameter",
		Example: `  geoxml fx curve "curve;float;4;1.0;0;0.5;1;0.5" --at 0.1,0.6`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := src.param(args)
			if err != nil {
				return err
			}
			curve, err := fx.ParseCurve(s)
			if err != nil {
				return err
			}
			if len(at) == 0 {
				return printJSON(curve)
			}
			samples := make([]fx.Key, len(at))
			for i, t := range at {
				samples[i] = fx.Key{Time: t, Value: curve.Evaluate(t)}
			}
			return printJSON(samples)
		},
	}
	src.register(cmd)
	cmd.Flags().Float64SliceVar(&at, "at", nil, "sample the curve at these normalized times instead")
	return cmd
}

func (c *CLI) fxGradientCommand() *cobra.Command {
	var src fxSource
	cmd := &cobra.Command{
		Use:     "gradient [param]",
		Short:   "Decode a color gradient parameter",
		Example: `  geoxml fx gradient "gradient;color;2;0;{1,0,0,1};{0,0,1,0}"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := src.param(args)
			if err != nil {
				return err
			}
			p, err := fx.ParseGradient(s)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	src.register(cmd)
	return cmd
}

func (c *CLI) fxBurstsCommand() *cobra.Command {
	var src fxSource
	cmd := &cobra.Command{
		Use:     "bursts [param]",
		Short:   "Decode an emission burst list",
		Example: `  geoxml fx bursts "0.0;10;20;1;0.5"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := src.param(args)
			if err != nil {
				return err
			}
			bursts, err := fx.ParseBursts(s)
			if err != nil {
				return err
			}
			if bursts == nil {
				bursts = []fx.Burst{}
			}
			return printJSON(bursts)
		},
	}
	src.register(cmd)
	return cmd
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
