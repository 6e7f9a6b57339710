package main

import "github.com/Anenin41/Thesis-Public/cmd"

func main() {
	cmd.Execute()
}
