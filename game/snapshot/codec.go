package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wricardo/harvest-haven/game/engine"
)

var (
	// ErrNoSnapshot means there is nothing saved to load
	ErrNoSnapshot = errors.New("no snapshot found")
	// ErrCorruptSnapshot means a stored snapshot could not be decoded
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// DecodeError describes why a snapshot was rejected
type DecodeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "corrupt snapshot"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrCorruptSnapshot
func (e *DecodeError) Is(target error) bool {
	return target == ErrCorruptSnapshot
}

func corrupt(field, format string, args ...any) *DecodeError {
	return &DecodeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// wire types mirror the on-disk layout; pointers detect missing fields
type document struct {
	Player *playerDoc `json:"player"`
	Farm   *farmDoc   `json:"farm"`
}

type playerDoc struct {
	Energy    *int           `json:"energy"`
	Coins     *int           `json:"coins"`
	Inventory map[string]int `json:"inventory"`
	Harvested map[string]int `json:"harvested"`
}

type farmDoc struct {
	Size *int        `json:"size"`
	Grid [][]cropDoc `json:"grid"`
}

type cropDoc struct {
	Type       *string `json:"type"`
	Stage      *int    `json:"stage"`
	DaysGrown  *int    `json:"days_grown"`
	Watered    *int    `json:"watered"`
	Fertilized *int    `json:"fertilized"`
}

func intPtr(v int) *int { return &v }

// Encode serializes a player and farm into a snapshot blob
func Encode(player *engine.Player, farm *engine.Farm) ([]byte, error) {
	if player == nil || farm == nil {
		return nil, fmt.Errorf("encode snapshot: player and farm are required")
	}

	p := &playerDoc{
		Energy:    intPtr(player.Energy),
		Coins:     intPtr(player.Coins),
		Inventory: make(map[string]int, len(player.Inventory)),
		Harvested: make(map[string]int, len(player.Harvested)),
	}
	for item, n := range player.Inventory {
		p.Inventory[item] = n
	}
	for kind, n := range player.Harvested {
		p.Harvested[string(kind)] = n
	}

	f := &farmDoc{Size: intPtr(farm.Size), Grid: make([][]cropDoc, len(farm.Grid))}
	for i, row := range farm.Grid {
		f.Grid[i] = make([]cropDoc, len(row))
		for j, c := range row {
			cd := cropDoc{
				Stage:      intPtr(int(c.Stage)),
				DaysGrown:  intPtr(c.DaysGrown),
				Watered:    intPtr(c.Watered),
				Fertilized: intPtr(c.Fertilized),
			}
			if c.Stage != engine.Empty {
				kind := string(c.Kind)
				cd.Type = &kind
			}
			f.Grid[i][j] = cd
		}
	}

	return json.Marshal(document{Player: p, Farm: f})
}

// Decode restores a player and farm from a snapshot blob.
// Structural problems are reported as *DecodeError.
func Decode(blob []byte) (*engine.Player, *engine.Farm, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, &DecodeError{Reason: "invalid json", Err: err}
	}
	if dec.More() {
		return nil, nil, corrupt("", "trailing data after snapshot")
	}

	player, err := decodePlayer(doc.Player)
	if err != nil {
		return nil, nil, err
	}
	farm, err := decodeFarm(doc.Farm)
	if err != nil {
		return nil, nil, err
	}
	return player, farm, nil
}

func decodePlayer(p *playerDoc) (*engine.Player, error) {
	if p == nil {
		return nil, corrupt("player", "missing")
	}
	switch {
	case p.Energy == nil:
		return nil, corrupt("player.energy", "missing")
	case p.Coins == nil:
		return nil, corrupt("player.coins", "missing")
	case p.Inventory == nil:
		return nil, corrupt("player.inventory", "missing")
	case p.Harvested == nil:
		return nil, corrupt("player.harvested", "missing")
	}
	if *p.Energy < 0 {
		return nil, corrupt("player.energy", "negative value %d", *p.Energy)
	}
	if *p.Coins < 0 {
		return nil, corrupt("player.coins", "negative value %d", *p.Coins)
	}

	player := &engine.Player{
		Energy:    *p.Energy,
		Coins:     *p.Coins,
		Inventory: make(map[string]int, len(p.Inventory)),
		Harvested: make(map[engine.CropKind]int, len(p.Harvested)),
	}
	for item, n := range p.Inventory {
		if !engine.IsItem(item) {
			return nil, corrupt("player.inventory", "unknown item %q", item)
		}
		if n < 0 {
			return nil, corrupt("player.inventory", "negative count for %s", item)
		}
		player.Inventory[item] = n
	}
	for kind, n := range p.Harvested {
		if !engine.IsCropKind(kind) {
			return nil, corrupt("player.harvested", "unknown crop %q", kind)
		}
		if n < 0 {
			return nil, corrupt("player.harvested", "negative count for %s", kind)
		}
		player.Harvested[engine.CropKind(kind)] = n
	}
	return player, nil
}

func decodeFarm(f *farmDoc) (*engine.Farm, error) {
	if f == nil {
		return nil, corrupt("farm", "missing")
	}
	if f.Size == nil {
		return nil, corrupt("farm.size", "missing")
	}
	size := *f.Size
	if size < engine.MinFarmSize || size > engine.MaxFarmSize {
		return nil, corrupt("farm.size", "%d outside [%d, %d]", size, engine.MinFarmSize, engine.MaxFarmSize)
	}
	if len(f.Grid) != size {
		return nil, corrupt("farm.grid", "expected %d rows, got %d", size, len(f.Grid))
	}

	farm := engine.NewFarm(size)
	for i, row := range f.Grid {
		if len(row) != size {
			return nil, corrupt(fmt.Sprintf("farm.grid[%d]", i), "expected %d cells, got %d", size, len(row))
		}
		for j, cd := range row {
			c, err := decodeCrop(cd)
			if err != nil {
				err.Field = fmt.Sprintf("farm.grid[%d][%d]%s", i, j, err.Field)
				return nil, err
			}
			farm.Grid[i][j] = c
		}
	}
	return farm, nil
}

func decodeCrop(cd cropDoc) (engine.Crop, *DecodeError) {
	switch {
	case cd.Stage == nil:
		return engine.Crop{}, corrupt(".stage", "missing")
	case cd.DaysGrown == nil:
		return engine.Crop{}, corrupt(".days_grown", "missing")
	case cd.Watered == nil:
		return engine.Crop{}, corrupt(".watered", "missing")
	case cd.Fertilized == nil:
		return engine.Crop{}, corrupt(".fertilized", "missing")
	}

	stage := engine.Stage(*cd.Stage)
	if !stage.Valid() {
		return engine.Crop{}, corrupt(".stage", "%d outside 0..4", *cd.Stage)
	}
	if *cd.DaysGrown < 0 || *cd.Watered < 0 || *cd.Fertilized < 0 {
		return engine.Crop{}, corrupt("", "negative counter")
	}

	c := engine.Crop{
		Stage:      stage,
		DaysGrown:  *cd.DaysGrown,
		Watered:    *cd.Watered,
		Fertilized: *cd.Fertilized,
	}
	switch {
	case stage == engine.Empty && cd.Type != nil:
		return engine.Crop{}, corrupt(".type", "empty plot holds %q", *cd.Type)
	case stage != engine.Empty && cd.Type == nil:
		return engine.Crop{}, corrupt(".type", "missing for stage %s", stage)
	case cd.Type != nil:
		if !engine.IsCropKind(*cd.Type) {
			return engine.Crop{}, corrupt(".type", "unknown crop %q", *cd.Type)
		}
		c.Kind = engine.CropKind(*cd.Type)
	}
	return c, nil
}
