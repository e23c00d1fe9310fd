// posctl tareas de operación: migraciones, alta del primer admin y revisión de configuración.
package main

func main() {
	Execute()
}
