package main

import "github.com/gridtools/cubedsphere/cmd"

func main() {
	cmd.Execute()
}
