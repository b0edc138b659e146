package main

import "github.com/oralvis/oralvis/cmd"

func main() {
	cmd.Execute()
}
