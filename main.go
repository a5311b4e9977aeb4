package main

import "github.com/sitehatch/market-backend/cmd"

func main() {
	cmd.Init()
}
