package main

import "github.com/jmehdipour/phone-canon/cmd"

func main() {
	cmd.Execute()
}
