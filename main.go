package main

import "garbage-hunter/src/handler/cli"

func main() {
	cli.Run()
}
