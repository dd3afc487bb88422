// Command trader registers the team with the exchange, caches the issued
// credentials and keeps an authenticated client ready until it is stopped.
package main

import (
	"context"
	"os"
)

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	reportError(os.Stderr, err)
	os.Exit(exitCode(err))
}
