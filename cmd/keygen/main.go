package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/petalstack/florist/internal/auth"
)

func main() {
	rawKey, hash, err := auth.NewService("", 0).GenerateKey()
	if err != nil {
		slog.Error("failed to generate API key", "error", err)
		os.Exit(1)
	}

	fmt.Printf("API key (store it now, it is not shown again):\n  %s\n\n", rawKey)
	fmt.Printf("Set this on the server:\n  API_KEY_HASH='%s'\n", hash)
}
