package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/minaorangina/taboo/config"
)

func main() {
	logger := log.New(os.Stderr, "taboo ", 0)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	flag.StringVar(&cfg.WordsPath, "words", cfg.WordsPath, "path to a word list (default: bundled list)")
	flag.Parse()

	pool, err := cfg.Pool(logger)
	if err != nil {
		logger.Fatal(err)
	}

	source := cfg.WordsPath
	if source == "" {
		source = "bundled word list"
	}
	fmt.Printf("%s: %d cards\n", source, pool.Len())
}
