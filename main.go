package main

import "github.com/koki-develop/img2ascii/cmd"

func main() {
	cmd.Execute()
}
