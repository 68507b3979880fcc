package main

import "github.com/NihalShah4/cost-of-living-estimator/cmd"

func main() {
	cmd.Execute()
}
