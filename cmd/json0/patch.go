package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/nineteendo/json0/encode"
	"github.com/nineteendo/json0/patch"
)

func applyPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires one argument, a patch", cli.ErrUsage)
	}
	patchData := []byte(args[0])
	if !cfg.String {
		patchData, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading patch %s: %w", args[0], err)
		}
	}
	var ops []patch.Operation
	if !cfg.RFC6902 {
		ops, err = patch.Decode(patchData, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding patch: %w", err)
		}
	}
	applier := patch.NewApplier(cfg.queryOpts()...)
	for _, arg := range docArgs(args[1:]) {
		doc, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		if cfg.RFC6902 {
			doc, err = patch.RFC6902(doc, patchData)
		} else {
			doc, err = applier.Apply(doc, ops...)
		}
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
