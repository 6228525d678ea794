package main

import "github.com/theirongolddev/sipcalc/cmd"

func main() {
	cmd.Execute()
}
