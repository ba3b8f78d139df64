package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/nineteendo/json0/encode"
	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/parse"
	"github.com/nineteendo/json0/query"
)

func readDoc(cfg *MainConfig, arg string) (*ir.Node, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.parseOpts(), parse.ParseFilename(arg))
	doc, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return doc, nil
}

func docArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a query", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	engine := query.New(cfg.queryOpts()...)
	for _, arg := range docArgs(args[1:]) {
		doc, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		nodes, err := engine.Select([]query.Node{query.Root(doc)}, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
		values := make([]*ir.Node, 0, len(nodes))
		for _, n := range nodes {
			v, err := n.Value()
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		var res *ir.Node
		if len(values) == 1 {
			res = values[0]
		} else {
			res = ir.FromSlice(values)
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires one argument, an expression", cli.ErrUsage)
	}
	expr := args[0]
	engine := query.New(cfg.queryOpts()...)
	matched := false
	for _, arg := range docArgs(args[1:]) {
		doc, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		kept, err := engine.Filter([]query.Node{query.Root(doc)}, expr)
		if err != nil {
			return fmt.Errorf("error filtering %s with %s: %w", arg, expr, err)
		}
		if len(kept) == 0 {
			continue
		}
		matched = true
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	if !matched {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func formatDocs(cfg *FormatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Format.Parse(cc, args)
	if err != nil {
		cfg.Format.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range docArgs(args) {
		doc, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
