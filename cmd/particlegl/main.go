package main

import "github.com/ThatOtherAndrew/particlegl/cmd"

func main() {
	cmd.Execute()
}
