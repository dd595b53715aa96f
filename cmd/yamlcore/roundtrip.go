package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	yamlcore "github.com/yamlcore/go-yamlcore"
	"github.com/yamlcore/go-yamlcore/ir"
)

func roundtrip(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		return err
	}
	return forEachInput(args, func(name string, r io.Reader) error {
		buf, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		src := string(buf)
		docs, err := yamlcore.LoadString(src)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out, err := yamlcore.EmitDocuments(docs)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		again, err := yamlcore.LoadString(out)
		if err != nil {
			return fmt.Errorf("%s: emitted text does not load: %w", name, err)
		}
		stable := len(docs) == len(again)
		for i := 0; stable && i < len(docs); i++ {
			stable = ir.Equal(docs[i], again[i])
		}
		if !stable {
			fmt.Fprintf(cc.Out, "%s: UNSTABLE round trip\n", name)
		} else {
			fmt.Fprintf(cc.Out, "%s: %d documents, stable\n", name, len(docs))
		}
		if cfg.ShowDiff {
			dmp := diffmatchpatch.New()
			fmt.Fprintln(cc.Out, dmp.DiffPrettyText(dmp.DiffMain(src, out, false)))
		}
		return nil
	})
}
