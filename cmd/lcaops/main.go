// lcaops is the deployment-support CLI for the LCA prediction service:
//
//	lcaops fallback   build a synthetic fallback model artifact and save it
//	lcaops verify     probe stored artifacts; create a fallback if none load
//	lcaops health     poll the readiness endpoint until healthy or exhausted
//
// Every subcommand exits 0 on success and 1 on failure, so a deployment
// supervisor can gate on the exit code alone.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
