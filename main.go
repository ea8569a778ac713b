package main

import "github.com/denysvitali/filebrowser-go/cmd"

func main() {
	cmd.Execute()
}
