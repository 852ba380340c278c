package aggregate

import "strings"

// AreaRule maps any of Keywords, found by substring containment, to Label.
type AreaRule struct {
	Keywords []string
	Label    string
}

// AreaRules are checked in order; more specific places come before the
// cities that contain them.
var AreaRules = []AreaRule{
	{Keywords: []string{"關西機場", "關西空港", "KIX"}, Label: "關西機場"},
	{Keywords: []string{"環球影城", "USJ"}, Label: "環球影城"},
	{Keywords: []string{"嵐山", "嵯峨野"}, Label: "嵐山"},
	{Keywords: []string{"伏見"}, Label: "伏見"},
	{Keywords: []string{"宇治"}, Label: "宇治"},
	{Keywords: []string{"清水", "祇園", "東山", "二年坂", "三年坂", "八坂"}, Label: "東山"},
	{Keywords: []string{"金閣", "北野"}, Label: "金閣寺"},
	{Keywords: []string{"奈良"}, Label: "奈良"},
	{Keywords: []string{"難波", "道頓堀", "心齋橋", "黑門"}, Label: "難波"},
	{Keywords: []string{"梅田"}, Label: "梅田"},
	{Keywords: []string{"海遊館", "天保山", "大阪港"}, Label: "大阪港"},
	{Keywords: []string{"神戶"}, Label: "神戶"},
	{Keywords: []string{"京都"}, Label: "京都"},
	{Keywords: []string{"大阪"}, Label: "大阪"},
}

const maxAreaRunes = 10

// NormalizeArea maps a free-text area onto a canonical short label.
// Unknown areas are returned trimmed; those longer than ten characters are
// cut and suffixed with an ellipsis.
func NormalizeArea(area string) string {
	area = strings.TrimSpace(area)
	if area == "" {
		return ""
	}
	if label := ScanArea(area); label != "" {
		return label
	}
	r := []rune(area)
	if len(r) > maxAreaRunes {
		return string(r[:maxAreaRunes]) + "…"
	}
	return area
}

// ScanArea returns the label of the first known place found in text, or "".
func ScanArea(text string) string {
	for _, rule := range AreaRules {
		for _, k := range rule.Keywords {
			if strings.Contains(text, k) {
				return rule.Label
			}
		}
	}
	return ""
}
