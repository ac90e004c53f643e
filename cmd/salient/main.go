package main

import "github.com/MeKo-Tech/salient/cmd/salient/cmd"

func main() {
	cmd.Execute()
}
