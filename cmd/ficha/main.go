package main

import (
	"fmt"
	"os"

	"fichagen/internal/version"
)

func main() {
	// Minimal entrypoint printing a banner and an optional version.
	args := os.Args
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		}
	}

	fmt.Println("Ficha Técnica — generador de fichas de receta")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println("Use el binario fichagen para la interfaz completa.")
}
