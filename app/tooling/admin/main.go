// This program performs administrative tasks against a running node.
package main

import "github.com/shabareesh1383/sociora/app/tooling/admin/cmd"

func main() {
	cmd.Execute()
}
