package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/localkush/gettext-lib/internal/msgfmt"
)

type options struct {
	Output string `short:"o" long:"output-file" default:"messages.mo" value-name:"FILE" description:"write compiled catalog to specified file"`
}

func main() {
	var opts options
	args, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if len(args) < 2 {
		log.Fatal("no input file given")
	}

	catalog := &msgfmt.Catalog{}
	for _, filename := range args[1:] {
		f, err := os.Open(filename)
		if err != nil {
			log.Fatalf("cannot open %s: %s", filename, err)
		}
		parsed, err := msgfmt.ParsePO(f)
		f.Close()
		if err != nil {
			log.Fatalf("cannot parse file %s: %s", filename, err)
		}
		catalog.Messages = append(catalog.Messages, parsed.Messages...)
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		log.Fatalf("failed to create %s: %s", opts.Output, err)
	}
	if err := catalog.WriteMO(out); err != nil {
		log.Fatalf("failed to write catalog: %s", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("failed to write catalog: %s", err)
	}
}
