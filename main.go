package main

import "github.com/govpinn/govpinn/cmd"

func main() {
	cmd.Execute()
}
