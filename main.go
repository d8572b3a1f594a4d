package main

import "github.com/omicsops/samplectl/cmd"

func main() {
	cmd.Execute()
}
