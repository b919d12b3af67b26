package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/binzume/gltfconv/converter"
)

func loadOption(confFile string) (*converter.ConvertOption, error) {
	if confFile == "" {
		return &converter.ConvertOption{}, nil
	}
	conf, err := converter.LoadConfig(confFile)
	if err != nil {
		return nil, err
	}
	return conf.Option()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.gltf|input.glb|folder ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	format := flag.String("format", "", "output format: obj, stl or dae (default obj)")
	confFile := flag.String("config", "", "YAML config file")
	outDir := flag.String("outdir", "", "output directory, relative to each input (default output)")
	removeOriginal := flag.Bool("remove-original", false, "remove input files after conversion")
	concurrency := flag.Int("j", 0, "number of files converted in parallel")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	options, err := loadOption(*confFile)
	if err != nil {
		log.Fatal(err)
	}

	// flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "outdir":
			options.OutputDir = *outDir
		case "remove-original":
			options.RemoveOriginal = *removeOriginal
		case "j":
			options.Concurrency = *concurrency
		}
	})
	if *format != "" {
		if options.Format, err = converter.ParseTargetFormat(*format); err != nil {
			log.Fatal(err)
		}
	}

	files, err := converter.ExpandPaths(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no .gltf or .glb files found")
	}

	success, failed := converter.NewConverter(options).ConvertFiles(files)
	log.Printf("converted: %d, failed: %d", success, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
