package main

import (
	"os"

	"github.com/immich-tools/immich-album-manager/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
