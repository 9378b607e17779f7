// SPDX-License-Identifier: MPL-2.0

// enviz distributes environment definitions and runs commands inside
// managed environments.
package main

import cmd "github.com/enviz/enviz/cmd/enviz"

func main() {
	cmd.Execute()
}
