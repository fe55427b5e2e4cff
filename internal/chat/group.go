package chat

import (
	"slices"
	"time"

	"github.com/matheus3301/qshare/internal/textfmt"
)

// Group partitions msgs into display groups. Messages are ordered by time
// (stable, so equal timestamps keep their input order); a message joins the
// current group when it has the same role as the previous message and is at
// most window away from it. msgs itself is left untouched.
func Group(msgs []Message, window time.Duration) []DisplayGroup {
	sorted := slices.Clone(msgs)
	slices.SortStableFunc(sorted, func(a, b Message) int {
		return a.Time.Compare(b.Time)
	})

	var groups []DisplayGroup
	var prev *Message
	for i := range sorted {
		m := sorted[i]
		if len(groups) > 0 && prev.Role == m.Role && absDuration(m.Time.Sub(prev.Time)) <= window {
			last := &groups[len(groups)-1]
			last.Messages = append(last.Messages, m)
		} else {
			groups = append(groups, DisplayGroup{
				Role:       m.Role,
				Name:       m.Name,
				AvatarURL:  m.AvatarURL,
				ShowHeader: m.Role != RoleClient,
				HeaderTime: textfmt.TimeOfDay(m.Time),
				Messages:   []Message{m},
			})
		}
		prev = &sorted[i]
	}
	return groups
}

// GroupMinutes is Group with the window expressed in minutes.
func GroupMinutes(msgs []Message, windowMinutes float64) []DisplayGroup {
	return Group(msgs, time.Duration(windowMinutes*float64(time.Minute)))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
