package domain

import "strings"

// Bucket is the category an itinerary item is filed under.
type Bucket string

const (
	BucketFocus    Bucket = "focus"
	BucketSpot     Bucket = "spot"
	BucketTransit  Bucket = "transit"
	BucketFood     Bucket = "food"
	BucketShopping Bucket = "shopping"
	BucketBackup   Bucket = "backup"
	BucketOther    Bucket = "other"
)

// Buckets lists every bucket in day-card section order.
var Buckets = []Bucket{
	BucketFocus,
	BucketSpot,
	BucketTransit,
	BucketFood,
	BucketShopping,
	BucketBackup,
	BucketOther,
}

// bucketKeys maps the category strings used in itinerary documents.
var bucketKeys = map[string]Bucket{
	"今日重點":    BucketFocus,
	"景點":      BucketSpot,
	"行程說明/交通": BucketTransit,
	"餐食":      BucketFood,
	"逛街/補給":   BucketShopping,
	"備案/警示":   BucketBackup,
	"其他":      BucketOther,
}

// ParseBucket maps an explicit bucket string onto a Bucket. Both the
// document's Chinese category strings and the English keys are accepted.
func ParseBucket(s string) (Bucket, bool) {
	s = strings.TrimSpace(s)
	if b, ok := bucketKeys[s]; ok {
		return b, true
	}
	b := Bucket(strings.ToLower(s))
	for _, known := range Buckets {
		if b == known {
			return b, true
		}
	}
	return "", false
}

// Key returns the category string used for b in itinerary documents.
func (b Bucket) Key() string {
	for k, v := range bucketKeys {
		if v == b {
			return k
		}
	}
	return string(b)
}

// Label returns the section heading shown above b's items on a day card.
func (b Bucket) Label() string {
	switch b {
	case BucketFocus:
		return "今日重點（不建議刪）"
	case BucketSpot:
		return "順遊景點（視體力增減）"
	case BucketTransit:
		return "交通/行程說明（控時關鍵）"
	case BucketFood:
		return "餐食（親子優先）"
	case BucketShopping:
		return "逛街/補給（彈性）"
	case BucketBackup:
		return "備案/警示（雨天/排隊/超時）"
	default:
		return "其他"
	}
}

// Marker returns the CSS marker class for b.
func (b Bucket) Marker() string {
	switch b {
	case BucketFocus:
		return "mFocus"
	case BucketTransit:
		return "mMove"
	case BucketFood:
		return "mFood"
	case BucketBackup:
		return "mBackup"
	default:
		return "mSpot"
	}
}

// TimeSlot is the part of the day an item is scheduled in.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotNoon      TimeSlot = "noon"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNone      TimeSlot = ""
)

// TimeSlots lists the scheduled slots in chronological order.
var TimeSlots = []TimeSlot{SlotMorning, SlotNoon, SlotAfternoon, SlotEvening}

var slotKeys = map[string]TimeSlot{
	"上午": SlotMorning, "早上": SlotMorning, "早": SlotMorning, "morning": SlotMorning,
	"中午": SlotNoon, "午": SlotNoon, "noon": SlotNoon,
	"下午": SlotAfternoon, "afternoon": SlotAfternoon,
	"晚上": SlotEvening, "傍晚": SlotEvening, "晚": SlotEvening, "evening": SlotEvening, "night": SlotEvening,
}

// ParseTimeSlot maps a free-text slot onto a TimeSlot.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SlotNone, true
	}
	slot, ok := slotKeys[s]
	return slot, ok
}

// Label returns the display name for the slot.
func (s TimeSlot) Label() string {
	switch s {
	case SlotMorning:
		return "上午"
	case SlotNoon:
		return "中午"
	case SlotAfternoon:
		return "下午"
	case SlotEvening:
		return "晚上"
	default:
		return "未排時段"
	}
}
