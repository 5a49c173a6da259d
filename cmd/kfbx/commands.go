package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/twinfer/kfbx/internal/graph"
	"github.com/twinfer/kfbx/pkg/fbx"
	"github.com/twinfer/kfbx/pkg/kfbx"
)

func (a *app) cmdDump() *cobra.Command {
	var format, where string
	summarizeArrays := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json or yaml")
		cmd.Flags().StringVarP(&where, "where", "w", "", "only dump nodes matching the CEL predicate")
		cmd.Flags().BoolVar(&summarizeArrays, "summarize-arrays", summarizeArrays, "replace array elements with their type and length in json and yaml output")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "dump <fbx-file>",
		Short:        "dump the node tree of an FBX file",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.config.Format
			}
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q", format)
			}
			if !cmd.Flags().Changed("summarize-arrays") {
				summarizeArrays = a.config.SummarizeArrays
			}

			doc, err := a.decoder.DecodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if where != "" {
				doc.Nodes, err = a.decoder.Filter(cmd.Context(), doc.Nodes, where)
				if err != nil {
					return err
				}
			}

			switch format {
			case "json":
				return writeJSON(a.stdout, output(doc, summarizeArrays))
			case "yaml":
				return writeYAML(a.stdout, output(doc, summarizeArrays))
			}
			return fbx.Dump(a.stdout, doc.Nodes)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func output(doc fbx.Document, summarizeArrays bool) any {
	if summarizeArrays {
		return kfbx.Structured(doc, false)
	}
	return doc
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling to YAML: %w", err)
	}
	return enc.Close()
}

func (a *app) cmdHeader() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "header <fbx-file>",
		Short:        "print the format version of an FBX file",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading FBX file: %w", err)
			}
			f, err := a.decoder.Header(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			width := 32
			if f.WideOffsets() {
				width = 64
			}
			_, err = fmt.Fprintf(a.stdout, "version: %d (%s)\noffsets: %d-bit\n", f.Version, f, width)
			return err
		},
	}
	return cmd
}

func (a *app) cmdFind() *cobra.Command {
	var where string
	withProperties := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&where, "where", "w", "", "CEL predicate selecting nodes")
		cmd.Flags().BoolVarP(&withProperties, "properties", "p", withProperties, "print the properties of each match")
		return cmd.MarkFlagRequired("where")
	}
	var cmd = &cobra.Command{
		Use:          "find <fbx-file>",
		Short:        "print the paths of nodes matching a CEL predicate",
		Example:      `  kfbx find scene.fbx --where 'name == "Model" && objectClass(props[1]) == "Model"'`,
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.decoder.DecodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			matches, err := a.decoder.Query(cmd.Context(), doc.Nodes, where)
			if err != nil {
				return err
			}
			for _, m := range matches {
				if err := writeMatch(a.stdout, m, withProperties); err != nil {
					return err
				}
			}
			a.logger.Debug("find", "file", args[0], "matches", len(matches))
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func writeMatch(w io.Writer, m kfbx.Match, withProperties bool) error {
	if !withProperties || len(m.Node.Properties) == 0 {
		_, err := fmt.Fprintln(w, m.PathString())
		return err
	}
	props := make([]string, len(m.Node.Properties))
	for i, p := range m.Node.Properties {
		props[i] = strings.ReplaceAll(p.String(), "\x00\x01", "::")
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", m.PathString(), strings.Join(props, ", "))
	return err
}

func (a *app) cmdGraph() *cobra.Command {
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "write the DOT graph to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "graph <fbx-file>",
		Short:        "emit a DOT graph of the objects and connections of an FBX file",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.decoder.DecodeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			g, err := graph.Build(doc.Nodes)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			vertices, edges := g.Len()
			a.logger.Debug("graph", "file", args[0], "vertices", vertices, "edges", edges)
			if outputFile == "" {
				return g.WriteDOT(a.stdout)
			}
			if err := os.WriteFile(outputFile, []byte(g.String()), 0o644); err != nil {
				return fmt.Errorf("writing graph: %w", err)
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
