// file:artkv/main.go
package main

import "github.com/rskv-p/artkv/cmd"

func main() {
	cmd.Execute()
}
