// cmd/biorseo/main.go
package main

import (
	"biorseo/internal/app"
	"biorseo/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
