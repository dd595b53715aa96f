package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/yamlcore/go-yamlcore/parse"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	evf := fmt.Sprintf
	if cfg.Color || isTerminal(cc.Out) {
		evf = color.New(color.FgHiBlue).SprintfFunc()
	}
	return forEachInput(args, func(name string, r io.Reader) error {
		buf, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if err := dumpEvents(cc.Out, string(buf), evf); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}

func dumpEvents(w io.Writer, src string, evf func(string, ...any) string) error {
	p := parse.NewParser(src)
	depth := 0
	for {
		ev, err := p.Next()
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		switch ev.Kind {
		case parse.StreamEnd, parse.DocumentEnd, parse.SequenceEnd, parse.MappingEnd:
			depth--
		}
		_, err = fmt.Fprintf(w, "%4d:%-3d %s%s\n",
			ev.Mark.Line, ev.Mark.Col+1, strings.Repeat("  ", depth), evf("%s", ev))
		if err != nil {
			return err
		}
		switch ev.Kind {
		case parse.StreamStart, parse.DocumentStart, parse.SequenceStart, parse.MappingStart:
			depth++
		}
	}
}
