package main

import "github.com/chrisuehlinger/cliptrim/cmd"

func main() {
	cmd.Execute()
}
