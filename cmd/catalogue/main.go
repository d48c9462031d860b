// Catalogue - media asset catalogue and trivia data toolkit
package main

import "github.com/outsmart/catalogue/internal/cli"

const version = "0.1.0"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
