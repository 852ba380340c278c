package classify

import (
	"strings"

	"github.com/alexanderramin/tripboard/internal/domain"
)

// Input is what a rule sees: the item and the day it belongs to.
type Input struct {
	Item *domain.Item
	Day  *domain.Day
}

// Rule assigns Bucket when Match returns true. Rules are evaluated in table
// order and the first match wins.
type Rule struct {
	Name   string
	Match  func(in Input) bool
	Bucket domain.Bucket
}

// FoodKeywords mark an item as a meal when found in title or note.
var FoodKeywords = []string{
	"餐", "午餐", "晚餐", "早餐", "拉麵", "燒肉", "壽司", "烏龍", "定食", "便當",
	"咖啡", "甜點", "抹茶", "布丁", "冰淇淋", "麵包", "居酒屋", "市場", "小吃",
	"lunch", "dinner", "breakfast", "brunch", "cafe", "coffee", "dessert", "food",
}

// WalkKeywords mark an item as walk-heavy. The tag is secondary and does not
// change the bucket.
var WalkKeywords = []string{
	"步行", "散步", "階梯", "樓梯", "坡道", "坂", "參道", "神社", "寺", "稻荷", "鳥居", "登山", "健行",
	"walk", "hike", "stairs", "shrine", "temple",
}

// HeadlineAttractions are names that reliably draw long queues.
var HeadlineAttractions = []string{
	"大阪城", "海遊館", "環球影城", "USJ", "清水寺", "伏見稻荷", "金閣寺", "天守閣", "哈利波特", "任天堂",
}

// queueWarningMarker flags a day whose warnings mention queues.
const queueWarningMarker = "排隊"

// BucketRules is the ordered classification table. The highlight rule sits
// first so a highlighted item is filed under focus even when the document
// gives it an explicit bucket.
var BucketRules = []Rule{
	{
		Name:   "highlight",
		Bucket: domain.BucketFocus,
		Match: func(in Input) bool {
			return in.Day != nil && in.Day.IsHighlighted(in.Item.Title)
		},
	},
	{
		Name: "explicit",
		Match: func(in Input) bool {
			return in.Item.Bucket != ""
		},
	},
	{
		Name:   "food-keyword",
		Bucket: domain.BucketFood,
		Match: func(in Input) bool {
			return containsAny(in.Item.Text(), FoodKeywords)
		},
	},
}

// IsWalkHeavy reports whether the item's text mentions walking, stairs or
// shrines.
func IsWalkHeavy(it *domain.Item) bool {
	return containsAny(it.Text(), WalkKeywords)
}

// IsQueueRisk reports whether the item names a headline attraction or its
// day carries a queue warning.
func IsQueueRisk(it *domain.Item, day *domain.Day) bool {
	if containsAny(it.Text(), HeadlineAttractions) {
		return true
	}
	return day != nil && day.HasWarningTitled(queueWarningMarker)
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
