package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/yamlcore/go-yamlcore/encode"
	"github.com/yamlcore/go-yamlcore/load"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return forEachInput(args, func(name string, r io.Reader) error {
		docs, err := load.NewDecoder(r).Decode()
		if err != nil {
			return err
		}
		return encode.EncodeDocuments(docs, cc.Out, opts...)
	})
}
