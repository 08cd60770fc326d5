package engine

import "fmt"

// Event is the random occurrence that ends a day
type Event string

const (
	EventNone    Event = "none"
	EventRain    Event = "rain"
	EventDrought Event = "drought"
	EventPests   Event = "pests"
)

// events is the pool RollEvent draws from uniformly
var events = []Event{EventNone, EventRain, EventDrought, EventPests}

// MaxPestAttempts bounds how many cells one infestation tries
const MaxPestAttempts = 3

// RandomSource is the only randomness the engine uses; *math/rand.Rand satisfies it
type RandomSource interface {
	Intn(n int) int
}

// RollEvent picks one event uniformly at random
func RollEvent(rng RandomSource) Event {
	return events[rng.Intn(len(events))]
}

// EventOutcome is what applying an event did to the farm
type EventOutcome struct {
	Event        Event
	Rained       bool
	PestAttempts int
	Killed       []Position
}

// ApplyEvent runs the day-end effect of event on the farm.
// Rain, drought and calm days advance every plot; pests skip growth and
// kill tended plots at random cells instead.
func ApplyEvent(event Event, farm *Farm, rng RandomSource) EventOutcome {
	outcome := EventOutcome{Event: event}

	switch event {
	case EventRain:
		outcome.Rained = true
		farm.AdvanceDay(true)
	case EventPests:
		outcome.PestAttempts = 1 + rng.Intn(MaxPestAttempts)
		for i := 0; i < outcome.PestAttempts; i++ {
			x := rng.Intn(farm.Size)
			y := rng.Intn(farm.Size)
			c := &farm.Grid[x][y]
			if c.Stage.Tending() {
				c.Stage = Dead
				outcome.Killed = append(outcome.Killed, Position{X: x, Y: y})
			}
		}
	default:
		farm.AdvanceDay(false)
	}

	return outcome
}

// Describe renders a one-line summary of the outcome
func (o EventOutcome) Describe() string {
	switch o.Event {
	case EventRain:
		return "It rained overnight. Every crop got a free watering."
	case EventDrought:
		return "A dry spell passed over the farm."
	case EventPests:
		if len(o.Killed) == 0 {
			return fmt.Sprintf("Pests swept through %d plot(s) but found nothing to eat.", o.PestAttempts)
		}
		return fmt.Sprintf("Pests swept through %d plot(s) and killed %d crop(s).", o.PestAttempts, len(o.Killed))
	default:
		return "A calm day on the farm."
	}
}
