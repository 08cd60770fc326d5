package engine

// Player holds the economic state of the farmer
type Player struct {
	Energy    int              `json:"energy"`
	Coins     int              `json:"coins"`
	Inventory map[string]int   `json:"inventory"`
	Harvested map[CropKind]int `json:"harvested"`
}

// DefaultInventory is the starting stock of a new player
func DefaultInventory() map[string]int {
	return map[string]int{
		string(Wheat):  3,
		string(Tomato): 1,
		string(Carrot): 1,
		ItemWater:      10,
		ItemFertilizer: 2,
	}
}

// NewPlayer creates a rested player with the default coins and stock
func NewPlayer() *Player {
	return &Player{
		Energy:    MaxEnergy,
		Coins:     StartingCoins,
		Inventory: DefaultInventory(),
		Harvested: make(map[CropKind]int),
	}
}

// Count returns how many of item the player holds
func (p *Player) Count(item string) int {
	return p.Inventory[item]
}

// AddItem adds n of item to the inventory
func (p *Player) AddItem(item string, n int) {
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[item] += n
}

// CanPlant reports whether the player has a seed of kind
func (p *Player) CanPlant(kind CropKind) bool {
	return p.Inventory[string(kind)] > 0
}

// UseSeed consumes one seed of kind
func (p *Player) UseSeed(kind CropKind) bool {
	if !p.CanPlant(kind) {
		return false
	}
	p.Inventory[string(kind)]--
	return true
}

// AddHarvest records one harvested crop and pays its sell price.
// It does not check that anything was actually harvested.
func (p *Player) AddHarvest(kind CropKind) {
	if p.Harvested == nil {
		p.Harvested = make(map[CropKind]int)
	}
	p.Harvested[kind]++
	p.Coins += cropSpecs[kind].SellPrice
}

// UseWater consumes one water
func (p *Player) UseWater() bool {
	return p.useItem(ItemWater)
}

// UseFertilizer consumes one fertilizer
func (p *Player) UseFertilizer() bool {
	return p.useItem(ItemFertilizer)
}

func (p *Player) useItem(item string) bool {
	if p.Inventory[item] <= 0 {
		return false
	}
	p.Inventory[item]--
	return true
}

// SpendEnergy takes one point of energy for an action
func (p *Player) SpendEnergy() bool {
	if p.Energy <= 0 {
		return false
	}
	p.Energy--
	return true
}

// Rest restores energy to the maximum
func (p *Player) Rest() {
	p.Energy = MaxEnergy
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	clone := &Player{
		Energy:    p.Energy,
		Coins:     p.Coins,
		Inventory: make(map[string]int, len(p.Inventory)),
		Harvested: make(map[CropKind]int, len(p.Harvested)),
	}
	for k, v := range p.Inventory {
		clone.Inventory[k] = v
	}
	for k, v := range p.Harvested {
		clone.Harvested[k] = v
	}
	return clone
}
