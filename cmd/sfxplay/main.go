// SPDX-License-Identifier: EPL-2.0

// Command sfxplay loads, plays and renders sound effects through sfxpool.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
