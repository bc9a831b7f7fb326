// SPDX-License-Identifier: MIT
// Command lattice counts, enumerates and ranks the readings of a lattice
// document, or serves the same operations over HTTP.
//
//	$ lattice count -max 256 input.yaml
//	$ lattice paths -limit 20 input.json
//	$ lattice rank -k 3 -scorer coherence -view geojson input.yaml
//	$ lattice serve -c lattice.yaml -addr :8080
//
// A lattice path of "-" reads JSON from stdin.
package main

import (
	"context"
	"fmt"
	"os"
)

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	cmd := newApp(os.Stdout, os.Stderr).command()
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}
