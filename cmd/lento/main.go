package main

import "lento/cmd/lento/root"

func main() {
	root.Execute()
}
