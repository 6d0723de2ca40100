package main

import "github.com/nxtrace/NShor/cmd"

func main() {
	cmd.Excute()
}
