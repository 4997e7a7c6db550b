package main

import "github.com/haydenflinner/wd/cmd"

func main() {
	cmd.Execute()
}
