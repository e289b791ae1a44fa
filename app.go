package main

import "github.com/masmgr/commitgraph-go/cmd"

func main() {
	cmd.Run()
}
