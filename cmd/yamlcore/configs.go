package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/yamlcore/go-yamlcore/encode"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='colorize output even off terminals'"`
	Spread bool `cli:"name=spread desc='no inline containers under sequence entries'"`
	Indent int  `cli:"name=indent desc='spaces per nesting level (default 2)'"`

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

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.Spread {
		res = append(res, encode.Compact(false))
	}
	if cfg.Color || isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type DumpConfig struct {
	*MainConfig
	Dump *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type RoundtripConfig struct {
	*MainConfig
	ShowDiff bool `cli:"name=d desc='print a diff of input vs emitted text'"`

	Roundtrip *cli.Command
}
