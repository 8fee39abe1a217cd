// Command toolrun runs external build tools and records their output.
package main

import (
	"os"

	"github.com/jmgilman/toolrun/internal/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
