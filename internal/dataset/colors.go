package dataset

import "strings"

var topicColors = map[string]string{
	"microgravity":   "#4fc3f7",
	"radiation":      "#ff7043",
	"plant biology":  "#81c784",
	"microbiology":   "#ba68c8",
	"bone loss":      "#fff176",
	"immune":         "#f06292",
	"cardiovascular": "#e57373",
	"neuroscience":   "#7986cb",
}

const defaultColor = "#b0bec5"

// TopicColor maps a research topic to a display color.
func TopicColor(topic string) string {
	if c, ok := topicColors[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return c
	}
	return defaultColor
}
