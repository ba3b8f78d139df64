package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/nineteendo/json0/encode"
	"github.com/nineteendo/json0/parse"
	"github.com/nineteendo/json0/query"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	Sort    bool `cli:"name=sort desc='sort object keys while encoding'"`
	ASCII   bool `cli:"name=ascii desc='escape non-ASCII characters'"`

	Decimal  bool `cli:"name=decimal desc='decode numbers with arbitrary precision'"`
	Infinity bool `cli:"name=inf aliases=infinity desc='allow Infinity and NaN'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParseDecimal(cfg.Decimal),
		parse.ParseInfinity(cfg.Infinity),
	}
}

func (cfg *MainConfig) queryOpts() []query.Option {
	return []query.Option{
		query.WithDecimal(cfg.Decimal),
		query.WithInfinity(cfg.Infinity),
		query.WithOptionalMarker(true),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Wire(cfg.WireOut),
		encode.SortKeys(cfg.Sort),
		encode.ASCII(cfg.ASCII),
		encode.AllowInfinity(cfg.Infinity),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type FilterConfig struct {
	*MainConfig

	Filter *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String  bool `cli:"name=s desc='patch arg as string'"`
	RFC6902 bool `cli:"name=rfc6902 desc='apply an RFC 6902 JSON Patch'"`

	Patch *cli.Command
}

type FormatConfig struct {
	*MainConfig

	Format *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
