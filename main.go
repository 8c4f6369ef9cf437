package main

import "jadwalsholat_backend/cmd"

func main() {
	cmd.Execute()
}
