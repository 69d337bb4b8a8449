package main

import "github.com/OpenTraceLab/OpenTracePlot/cmd/otp/cmd"

func main() {
	cmd.Execute()
}
