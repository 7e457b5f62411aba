// Command dont does not run the command it is given.
package main

import (
	"os"

	"github.com/jmgilman/dont/internal/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
