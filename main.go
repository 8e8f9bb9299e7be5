package main

import "github.com/gaurav-prasanna/tablejoin/cmd"

func main() {
	cmd.Execute()
}
