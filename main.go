package main

import "dinnerconcierge/cmd"

func main() {
	cmd.Execute()
}
