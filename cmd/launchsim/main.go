// launchsim runs the launch engine against an in-memory ledger so operators
// can rehearse launch parameters: quote fee decay, replay buy/sell sessions
// and watch a pool walk to graduation.
package main

import (
	"fmt"
	"os"

	"github.com/moonforge-labs/launchpad/cmd/launchsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
