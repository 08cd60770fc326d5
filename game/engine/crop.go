package engine

// Crop is the state of one farm plot
type Crop struct {
	Kind       CropKind `json:"type"` // empty when the plot is Empty
	Stage      Stage    `json:"stage"`
	DaysGrown  int      `json:"days_grown"`
	Watered    int      `json:"watered"`
	Fertilized int      `json:"fertilized"`
}

// IsEmpty reports whether the plot holds no crop
func (c *Crop) IsEmpty() bool {
	return c.Stage == Empty
}

// Plant puts a new crop in the plot. It does not check the current stage;
// callers decide whether overwriting is allowed.
func (c *Crop) Plant(kind CropKind) {
	c.Kind = kind
	c.Stage = Planted
	c.DaysGrown = 0
	c.Watered = 0
	c.Fertilized = 0
}

// Water adds one watering while the crop is Planted or Growing
func (c *Crop) Water() {
	if c.Stage.Tending() {
		c.Watered++
	}
}

// Fertilize adds one fertilizing while the crop is Planted or Growing
func (c *Crop) Fertilize() {
	if c.Stage.Tending() {
		c.Fertilized++
	}
}

// AdvanceDay ages the crop by one day. Empty and Dead plots do not change.
func (c *Crop) AdvanceDay(rain bool) {
	if c.Stage == Empty || c.Stage == Dead {
		return
	}
	if rain {
		c.Watered++
	}
	c.DaysGrown++

	spec := cropSpecs[c.Kind]
	switch {
	case c.DaysGrown > spec.GrowTime+GraceDays:
		c.Stage = Dead
	case c.DaysGrown >= spec.GrowTime:
		if c.Watered >= spec.WaterNeeded && c.Fertilized >= spec.FertilizerNeeded {
			c.Stage = Harvestable
		} else {
			c.Stage = Growing
		}
	default:
		c.Stage = Growing
	}
}

// Harvest empties a Harvestable plot and returns what was in it.
// The bool is false, and nothing changes, for any other stage.
func (c *Crop) Harvest() (CropKind, bool) {
	if c.Stage != Harvestable {
		return "", false
	}
	kind := c.Kind
	c.Kind = ""
	c.Stage = Empty
	return kind, true
}
