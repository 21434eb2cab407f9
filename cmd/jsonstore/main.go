package main

import (
	"github.com/ipoluianov/jsonstore/internal/app"
)

func main() {
	app.ServiceName = "jsonstore"
	app.ServiceDisplayName = "JSON store service"
	app.ServiceDescription = "Stores JSON documents under short keys for one day"
	app.ServiceRunFunc = app.RunAsServiceF
	app.ServiceStopFunc = app.StopServiceF

	if !app.TryService() {
		app.RunConsole()
	}
}
