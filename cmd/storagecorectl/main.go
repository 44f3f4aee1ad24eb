package main

import "github.com/blockforge/storagecore/cmd/storagecorectl/app"

func main() {
	app.Execute()
}
