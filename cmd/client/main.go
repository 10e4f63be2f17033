package main

import "hmis/cmd/client/cmd"

func main() {
	cmd.Execute()
}
