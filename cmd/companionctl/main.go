package main

import "wallet_companion/cmd/companionctl/cmd"

func main() {
	cmd.Execute()
}
