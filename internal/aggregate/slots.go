package aggregate

import (
	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/domain"
)

// SlotGroup is the items of a day scheduled in one time slot.
type SlotGroup struct {
	Slot  domain.TimeSlot
	Items []classify.Item
}

// GroupBySlot groups a day's items by time of day, morning first, with
// unscheduled items last. Empty slots are omitted.
func GroupBySlot(day *classify.Day) []SlotGroup {
	order := append(append([]domain.TimeSlot{}, domain.TimeSlots...), domain.SlotNone)
	groups := make([]SlotGroup, 0, len(order))
	for _, slot := range order {
		var items []classify.Item
		for _, it := range day.Items {
			if it.Source.Slot == slot {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			groups = append(groups, SlotGroup{Slot: slot, Items: items})
		}
	}
	return groups
}
