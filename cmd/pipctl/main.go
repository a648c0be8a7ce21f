package main

import "github.com/ytget/popupbar/cmd/pipctl/cmd"

func main() {
	cmd.Execute()
}
