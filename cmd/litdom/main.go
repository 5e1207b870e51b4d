package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"litdom/parser"
	"litdom/parser/dom"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "litdom: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		format  string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:           "litdom [file]",
		Short:         "Parse HTML leniently and re-serialize it",
		Long:          "litdom parses an HTML document or fragment, recovering from malformed markup, and prints the tree as formatted HTML, JSON or YAML.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args, format, verbose)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, json, json-pretty or yaml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log recovery warnings to stderr")
	return cmd
}

func run(out io.Writer, args []string, format string, verbose bool) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	var opts []parser.Option
	if verbose {
		opts = append(opts, parser.WithWarningHandler(func(w string) {
			logrus.WithField("source", sourceName(args)).Warn(w)
		}))
	}
	d, err := parser.NewParser(string(input), opts...).Parse()
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	switch format {
	case "html":
		fmt.Fprint(out, d.Format(dom.Pretty()))
		return nil
	case "json":
		s, err := d.ToJSON()
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		fmt.Fprintln(out, s)
		return nil
	case "json-pretty":
		s, err := d.ToJSONPretty()
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		fmt.Fprintln(out, s)
		return nil
	case "yaml":
		return renderYAML(out, d)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		return b, errors.Wrap(err, "read stdin")
	}
	b, err := os.ReadFile(args[0])
	return b, errors.Wrapf(err, "read %s", args[0])
}

func sourceName(args []string) string {
	if len(args) == 0 {
		return "stdin"
	}
	return args[0]
}

// renderYAML re-encodes the structured JSON output as YAML. Attribute
// order is not preserved here; the JSON output is the round-trip format.
func renderYAML(out io.Writer, d *dom.Dom) error {
	js, err := d.ToJSON()
	if err != nil {
		return errors.Wrap(err, "encode json")
	}
	var v interface{}
	if err := json.Unmarshal([]byte(js), &v); err != nil {
		return errors.Wrap(err, "decode json")
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	_, err = out.Write(b)
	return errors.Wrap(err, "write output")
}
