// Package main is the entry point for deployctl, the deployment
// bootstrap runner. It installs the application's declared
// dependencies, applies pending database migrations, and collects
// static assets, in that order, stopping at the first failure.
package main

import "os"

func main() {
	os.Exit(Execute())
}
