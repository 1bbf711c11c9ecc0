package main

import "github.com/MichaelHoltonPrice/pyseshat/cmd"

func main() {
	cmd.Execute()
}
