package main

import "munka_backend/internal/app"

func main() {
	app.Run()
}
