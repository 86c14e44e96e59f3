package main

import "fairway_backend/internal/app"

func main() {
	app.Run()
}
