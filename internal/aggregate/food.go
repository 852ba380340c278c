package aggregate

import (
	"strings"

	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/domain"
)

// FoodKind is a meal type inferred from a food item's text.
type FoodKind string

const (
	FoodBreakfast FoodKind = "breakfast"
	FoodLunch     FoodKind = "lunch"
	FoodDinner    FoodKind = "dinner"
	FoodDessert   FoodKind = "dessert"
	FoodOther     FoodKind = "other"
)

// FoodKinds lists meal types in display order.
var FoodKinds = []FoodKind{FoodBreakfast, FoodLunch, FoodDinner, FoodDessert, FoodOther}

// Label returns the display name of k.
func (k FoodKind) Label() string {
	switch k {
	case FoodBreakfast:
		return "早餐/早午餐"
	case FoodLunch:
		return "午餐"
	case FoodDinner:
		return "晚餐"
	case FoodDessert:
		return "甜點/咖啡"
	default:
		return "其他餐食"
	}
}

type foodRule struct {
	Keywords []string
	Kind     FoodKind
}

// foodRules are evaluated in order and the first match wins, so 早午餐
// counts as breakfast rather than lunch.
var foodRules = []foodRule{
	{Keywords: []string{"早餐", "早午餐", "朝食", "brunch", "breakfast"}, Kind: FoodBreakfast},
	{Keywords: []string{"午餐", "午飯", "中餐", "lunch"}, Kind: FoodLunch},
	{Keywords: []string{"晚餐", "晚飯", "宵夜", "dinner", "supper"}, Kind: FoodDinner},
	{Keywords: []string{"甜點", "咖啡", "抹茶", "冰淇淋", "布丁", "下午茶", "cafe", "coffee", "dessert"}, Kind: FoodDessert},
}

// MaxFoodExamples caps the example references kept for display.
const MaxFoodExamples = 10

// FoodExample references one meal in the itinerary.
type FoodExample struct {
	DayLabel string   `json:"day_label"`
	Title    string   `json:"title"`
	Kind     FoodKind `json:"kind"`
}

// FoodSummary is the meal-type histogram across the trip.
type FoodSummary struct {
	Counts   map[FoodKind]int `json:"counts"`
	Total    int              `json:"total"`
	Examples []FoodExample    `json:"examples"`
}

// ClassifyFood returns the meal type of a food item.
func ClassifyFood(it *domain.Item) FoodKind {
	text := strings.ToLower(it.Text())
	for _, r := range foodRules {
		for _, k := range r.Keywords {
			if strings.Contains(text, strings.ToLower(k)) {
				return r.Kind
			}
		}
	}
	return FoodOther
}

// SummarizeFood builds the meal histogram over every item filed as food.
func SummarizeFood(days []classify.Day) FoodSummary {
	s := FoodSummary{Counts: make(map[FoodKind]int, len(FoodKinds))}
	for _, k := range FoodKinds {
		s.Counts[k] = 0
	}
	for _, d := range days {
		for _, it := range d.Items {
			if it.Bucket != domain.BucketFood {
				continue
			}
			kind := ClassifyFood(&it.Source)
			s.Counts[kind]++
			s.Total++
			if len(s.Examples) < MaxFoodExamples {
				s.Examples = append(s.Examples, FoodExample{
					DayLabel: d.Source.Label,
					Title:    domain.CoalesceStr(it.Source.Title, it.Source.Note),
					Kind:     kind,
				})
			}
		}
	}
	return s
}
