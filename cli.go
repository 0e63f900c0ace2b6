//go:build cli
// +build cli

package main

import (
	"barpos.GO/cmd"
	"barpos.GO/config"
	_ "barpos.GO/custom"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
