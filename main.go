package main

import "querybench/cmd"

func main() {
	cmd.Execute()
}
