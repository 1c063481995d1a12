package main

import "github.com/xdfio/xdf/cmd"

func main() {
	cmd.Execute()
}
