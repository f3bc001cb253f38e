package main

import "github.com/Justype/batchsub/cmd"

func main() {
	cmd.Execute()
}
