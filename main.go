package main

import "clubops/cmd"

func main() {
	cmd.Execute()
}
