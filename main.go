package main

import "github.com/nsyszr/decoderfleet/cmd"

func main() {
	cmd.Execute()
}
