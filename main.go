// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/inigrep/inigrep/cmd/inigrep"

func main() {
	cmd.Execute()
}
