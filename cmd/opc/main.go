package main

import "github.com/OpenPlanLab/OpenPlanCAD/cmd/opc/cmd"

func main() {
	cmd.Execute()
}
