// Command entropy runs and manages particle animations.
//
//	entropy run -c space.ini
//	entropy run -c space.json --terminal
//	entropy export -c space.ini -o ./out
//	entropy reset -c space.ini
//	entropy example-config --format json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
