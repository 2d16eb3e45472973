package main

import "github.com/osnoire/noiresh/cmd"

func main() {
	cmd.Execute()
}
