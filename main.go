package main

import "github.com/yohashinoio/twkl/cmd"

func main() {
	cmd.Execute()
}
