package engine

// FindStage lists every plot in the given stage, row by row
func FindStage(farm *Farm, stage Stage) []Position {
	var positions []Position
	for x, row := range farm.Grid {
		for y, c := range row {
			if c.Stage == stage {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

// FindEmpty lists plots that accept a new seed (Empty or Dead)
func FindEmpty(farm *Farm) []Position {
	return append(FindStage(farm, Empty), FindStage(farm, Dead)...)
}

// NeedsCare lists tended plots still short of water or fertilizer
func NeedsCare(farm *Farm) []Position {
	var positions []Position
	for x, row := range farm.Grid {
		for y, c := range row {
			if !c.Stage.Tending() {
				continue
			}
			spec := cropSpecs[c.Kind]
			if c.Watered < spec.WaterNeeded || c.Fertilized < spec.FertilizerNeeded {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

// DaysUntilDeath returns how many more day advances a tended crop survives.
// It is -1 for plots that cannot die.
func DaysUntilDeath(c Crop) int {
	if c.Stage == Empty || c.Stage == Dead {
		return -1
	}
	return cropSpecs[c.Kind].GrowTime + GraceDays - c.DaysGrown
}

// AnalyzeCropRisk flags the most urgent situation on the farm
func AnalyzeCropRisk(state *GameState) string {
	farm := state.Farm
	ready := farm.CountStage(Harvestable)

	critical := 0
	for _, row := range farm.Grid {
		for _, c := range row {
			if d := DaysUntilDeath(c); d >= 0 && d <= 1 {
				critical++
			}
		}
	}

	switch {
	case critical > 0 && ready > 0:
		return "CRITICAL: Harvestable crops will die soon, harvest them"
	case critical > 0:
		return "DANGER: Crops are close to dying"
	case ready > 0:
		return "READY: Crops waiting to be harvested"
	case len(NeedsCare(farm)) > 0:
		return "CAUTION: Some crops still need water or fertilizer"
	}
	return "SAFE: Farm is in good shape"
}

// HarvestValue sums the sell price of every Harvestable plot
func HarvestValue(farm *Farm) int {
	total := 0
	for _, row := range farm.Grid {
		for _, c := range row {
			if c.Stage == Harvestable {
				total += cropSpecs[c.Kind].SellPrice
			}
		}
	}
	return total
}
