// The main package for the arinwatch executable.
package main

import (
	"os"

	"github.com/JakeFAU/arin-waitlist-watcher/cmd"
)

// main defers all execution to the Cobra CLI layer and exits with the code
// it reports, so external schedulers can distinguish found, not-found and
// error cycles.
func main() {
	os.Exit(cmd.Execute())
}
