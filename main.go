package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/barryzzz/speller/config"
	C "github.com/barryzzz/speller/constant"
	"github.com/barryzzz/speller/hub"
	"github.com/barryzzz/speller/log"
)

var (
	flagset            map[string]bool
	version            bool
	configFile         string
	externalController string
	secret             string
	encoding           string
)

func init() {
	flag.StringVar(&configFile, "f", "", "specify configuration file")
	flag.StringVar(&externalController, "ext-ctl", "", "override external controller address")
	flag.StringVar(&secret, "secret", "", "override secret for RESTful API")
	flag.StringVar(&encoding, "encoding", "", "override input file encoding")
	flag.BoolVar(&version, "v", false, "show current version of speller")
	flag.Usage = usage
	flag.Parse()

	flagset = map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		flagset[f.Name] = true
	})
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n\t%s [flags] <dictionary> <filter> <text>...\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	if version {
		fmt.Printf("speller %s %s %s with %s %s\n", C.Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), C.BuildTime)
		return
	}

	rawCfg := config.DefaultRawConfig()
	if configFile != "" {
		var err error
		if rawCfg, err = config.ParseFile(configFile); err != nil {
			log.Fatalln("Parse config error: %s", err.Error())
		}
	}

	args := flag.Args()
	if configFile == "" && len(args) < 3 {
		usage()
		os.Exit(1)
	}
	if len(args) > 0 {
		rawCfg.Dictionary = args[0]
	}
	if len(args) > 1 {
		rawCfg.Filter = args[1]
	}
	if len(args) > 2 {
		rawCfg.Texts = args[2:]
	}
	if flagset["ext-ctl"] {
		rawCfg.ExternalController = externalController
	}
	if flagset["secret"] {
		rawCfg.Secret = secret
	}
	if flagset["encoding"] {
		rawCfg.Encoding = encoding
	}

	cfg, err := config.ParseRawConfig(rawCfg)
	if err != nil {
		log.Fatalln("Parse config error: %s", err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := hub.Parse(ctx, cfg, os.Stdout); err != nil {
		log.Fatalln("%s", err.Error())
	}
}
