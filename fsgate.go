package main

import (
	_ "embed"
	"fmt"
	"os"

	cli "github.com/neboloop/fsgate/cmd/fsgate"
	"github.com/neboloop/fsgate/internal/config"

	"github.com/joho/godotenv"
)

//go:embed etc/fsgate.yaml
var embeddedConfig []byte

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Load embedded config (defaults)
	c, err := config.LoadFromBytes(embeddedConfig)
	if err != nil {
		fmt.Printf("Failed to load embedded config: %v\n", err)
		os.Exit(1)
	}

	// ALLOWED_DIR overrides the file allow-list; malformed values are fatal
	if err := c.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cli.SetupRootCmd(&c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
