package main

import (
	"docketsearch/cmd/docketsearch/commands"
	"docketsearch/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
