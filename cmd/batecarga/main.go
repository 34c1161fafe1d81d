// Comando batecarga: ejecuta la conferencia de carga desde la línea de comandos
// y emite tokens para la API.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
