// Command traylocate registers a notification-area icon of its own and
// reports where the shell drew it.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
