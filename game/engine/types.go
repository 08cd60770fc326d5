package engine

// CropKind names a plantable crop
type CropKind string

const (
	Wheat  CropKind = "Wheat"
	Tomato CropKind = "Tomato"
	Carrot CropKind = "Carrot"
)

// Item names that are not seeds
const (
	ItemWater      = "Water"
	ItemFertilizer = "Fertilizer"
)

const (
	DefaultFarmSize = 5
	MinFarmSize     = 1
	MaxFarmSize     = 20
	MaxEnergy       = 10
	StartingCoins   = 20

	// A crop dies once daysGrown exceeds growTime by more than this many days.
	GraceDays = 2
)

// CropSpec holds the constant attributes of a crop kind
type CropSpec struct {
	Kind             CropKind `json:"kind"`
	GrowTime         int      `json:"grow_time"`
	WaterNeeded      int      `json:"water_needed"`
	FertilizerNeeded int      `json:"fertilizer_needed"`
	SellPrice        int      `json:"sell_price"`
}

var cropSpecs = map[CropKind]CropSpec{
	Wheat:  {Kind: Wheat, GrowTime: 3, WaterNeeded: 1, FertilizerNeeded: 0, SellPrice: 5},
	Tomato: {Kind: Tomato, GrowTime: 5, WaterNeeded: 2, FertilizerNeeded: 1, SellPrice: 12},
	Carrot: {Kind: Carrot, GrowTime: 4, WaterNeeded: 1, FertilizerNeeded: 1, SellPrice: 8},
}

// cropOrder fixes iteration order for listings
var cropOrder = []CropKind{Wheat, Tomato, Carrot}

// Spec returns the constant attributes of a crop kind
func Spec(kind CropKind) (CropSpec, bool) {
	spec, ok := cropSpecs[kind]
	return spec, ok
}

// CropKinds returns every known crop kind in display order
func CropKinds() []CropKind {
	kinds := make([]CropKind, len(cropOrder))
	copy(kinds, cropOrder)
	return kinds
}

// IsCropKind reports whether name is a known crop kind
func IsCropKind(name string) bool {
	_, ok := cropSpecs[CropKind(name)]
	return ok
}

// IsItem reports whether name is something the inventory can hold
func IsItem(name string) bool {
	return IsCropKind(name) || name == ItemWater || name == ItemFertilizer
}

// Stage is a crop lifecycle phase
type Stage int

const (
	Empty Stage = iota
	Planted
	Growing
	Harvestable
	Dead
)

var stageNames = [...]string{"Empty", "Planted", "Growing", "Harvestable", "Dead"}

func (s Stage) String() string {
	if s.Valid() {
		return stageNames[s]
	}
	return "Unknown"
}

// Valid reports whether s is one of the five lifecycle stages
func (s Stage) Valid() bool {
	return s >= Empty && s <= Dead
}

// Tending reports whether water and fertilizer take effect in this stage
func (s Stage) Tending() bool {
	return s == Planted || s == Growing
}

// Position represents x,y coordinates on the farm; x selects the row
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameConfig is a ruleset loaded from YAML
type GameConfig struct {
	Name              string         `json:"name" yaml:"name"`
	Description       string         `json:"description" yaml:"description"`
	FarmSize          int            `json:"farm_size" yaml:"farm_size"`
	StartingCoins     int            `json:"starting_coins" yaml:"starting_coins"`
	StartingInventory map[string]int `json:"starting_inventory" yaml:"starting_inventory"`
	Seed              int64          `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// GameState represents the complete state of one farm session
type GameState struct {
	Day          int         `json:"day"`
	Player       *Player     `json:"player"`
	Farm         *Farm       `json:"farm"`
	Message      string      `json:"message"`
	LastEvent    Event       `json:"last_event,omitempty"`
	History      []DayReport `json:"history"`
	TotalActions int         `json:"total_actions"`
	ConfigName   string      `json:"config_name"`

	// Decision aids filled in by the service layer
	FarmView       []string   `json:"farm_view,omitempty"`
	CropRisk       string     `json:"crop_risk,omitempty"`
	PlantablePlots []Position `json:"plantable_plots,omitempty"`
	HarvestValue   int        `json:"harvest_value,omitempty"`
}

// Result codes carried by ActionResult
const (
	CodeOK                   = "ok"
	CodeInvalidTarget        = "invalid_target"
	CodeInsufficientResource = "insufficient_resource"
)

// ActionResult reports the outcome of a player action. Business-rule
// failures come back here with Success=false and no state change.
type ActionResult struct {
	Success  bool      `json:"success"`
	Code     string    `json:"code"`
	Action   string    `json:"action"`
	Position *Position `json:"position,omitempty"`
	Item     string    `json:"item,omitempty"`
	Message  string    `json:"message"`
}

// DayReport records what happened when a day ended
type DayReport struct {
	ID           string     `json:"id"`
	Day          int        `json:"day"`
	Event        Event      `json:"event"`
	Rained       bool       `json:"rained"`
	PestAttempts int        `json:"pest_attempts,omitempty"`
	Killed       []Position `json:"killed,omitempty"`
	Message      string     `json:"message"`
}
