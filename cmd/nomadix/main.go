package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"nomadix/internal/di"
	"nomadix/internal/structures"
)

func main() {
	var flags structures.CliFlags
	flag.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	flag.StringVarP(&flags.EnvPath, "env", "e", ".env", "path to an optional .env file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")
	flag.Parse()

	// A missing .env is fine; the config file and real environment still apply.
	_ = godotenv.Load(flags.EnvPath)

	_, cleanup, err := di.InitApp(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nomadix: %s\n", err)
		os.Exit(1)
	}
	cleanup()
}
