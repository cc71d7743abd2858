// main is the entry point for the laborstat CLI.
package main

import (
	"github.com/mcarrero/laborstat/cmd"
	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/internal/snapstore"
)

func main() {
	cmd.SetStoreManager(snapstore.Manager)

	err := cmd.Execute()

	if closeErr := snapstore.Manager.CloseStores(); closeErr != nil {
		contract.LogWarn("Failed to close run archive", closeErr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
