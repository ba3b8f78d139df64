package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nineteendo/json0/encode"
)

func diffDocs(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments, from and to", cli.ErrUsage)
	}
	from, err := canonical(cfg, args[0])
	if err != nil {
		return err
	}
	to, err := canonical(cfg, args[1])
	if err != nil {
		return err
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(from, to, true)
	same := true
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			same = false
			break
		}
	}
	if same {
		return nil
	}
	if cfg.Color {
		if _, err := cc.Out.Write([]byte(diffCfg.DiffPrettyText(diffs))); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, ln := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
			if _, err := fmt.Fprintf(cc.Out, "%s%s\n", prefix, ln); err != nil {
				return err
			}
		}
	}
	return cli.ExitCodeErr(1)
}

// canonical renders a document sorted and indented so the diff tracks
// structure rather than formatting.
func canonical(cfg *DiffConfig, arg string) (string, error) {
	doc, err := readDoc(cfg.MainConfig, arg)
	if err != nil {
		return "", err
	}
	d, err := encode.Bytes(doc, encode.SortKeys(true), encode.ASCII(cfg.ASCII), encode.AllowInfinity(cfg.Infinity))
	if err != nil {
		return "", err
	}
	return string(d), nil
}
