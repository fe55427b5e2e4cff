package chat

import (
	"reflect"
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func msg(id string, role Role, offset time.Duration) Message {
	return Message{ID: id, Role: role, Time: base.Add(offset), Status: StatusSent}
}

func groupIDs(groups []DisplayGroup) [][]string {
	var out [][]string
	for _, g := range groups {
		var ids []string
		for _, m := range g.Messages {
			ids = append(ids, m.ID)
		}
		out = append(out, ids)
	}
	return out
}

func TestGroupEmpty(t *testing.T) {
	if got := Group(nil, 5*time.Minute); len(got) != 0 {
		t.Errorf("Group(nil) = %v, want empty", got)
	}
}

func TestGroupSingle(t *testing.T) {
	got := Group([]Message{msg("a", RolePeer, 0)}, 5*time.Minute)
	if len(got) != 1 || len(got[0].Messages) != 1 {
		t.Fatalf("Group(single) = %v, want one group of one", groupIDs(got))
	}
}

func TestGroupWindowBoundary(t *testing.T) {
	window := 5 * time.Minute
	tests := []struct {
		name  string
		delta time.Duration
		want  [][]string
	}{
		{"exactly window merges", window, [][]string{{"a", "b"}}},
		{"one ms over splits", window + time.Millisecond, [][]string{{"a"}, {"b"}}},
		{"well inside merges", time.Second, [][]string{{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := []Message{msg("a", RoleAssistant, 0), msg("b", RoleAssistant, tt.delta)}
			got := groupIDs(Group(msgs, window))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("groups = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupRoleBreak(t *testing.T) {
	msgs := []Message{
		msg("a", RoleClient, 0),
		msg("b", RoleAssistant, 0),
		msg("c", RoleClient, time.Second),
	}
	got := groupIDs(Group(msgs, time.Hour))
	want := [][]string{{"a"}, {"b"}, {"c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}
}

func TestGroupZeroWindow(t *testing.T) {
	msgs := []Message{
		msg("a", RoleClient, 0),
		msg("b", RoleClient, 0),
		msg("c", RoleClient, time.Millisecond),
	}
	got := groupIDs(Group(msgs, 0))
	want := [][]string{{"a", "b"}, {"c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}
}

func TestGroupSortsCopyStably(t *testing.T) {
	msgs := []Message{
		msg("late", RoleClient, 2*time.Minute),
		msg("tie1", RoleClient, time.Minute),
		msg("early", RoleClient, 0),
		msg("tie2", RoleClient, time.Minute),
	}
	got := groupIDs(Group(msgs, 5*time.Minute))
	want := [][]string{{"early", "tie1", "tie2", "late"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}
	if msgs[0].ID != "late" || msgs[2].ID != "early" {
		t.Error("Group reordered its input slice")
	}
}

func TestGroupHeaders(t *testing.T) {
	peer := msg("p", RolePeer, 0)
	peer.Name = "Lan"
	peer.AvatarURL = "https://example.test/lan.png"
	mine := msg("c", RoleClient, time.Minute)
	mine.Name = "You"

	got := Group([]Message{peer, mine}, 5*time.Minute)
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	if !got[0].ShowHeader || got[0].Name != "Lan" || got[0].AvatarURL != peer.AvatarURL {
		t.Errorf("peer group header = %+v", got[0])
	}
	if got[0].HeaderTime != "09:30" {
		t.Errorf("HeaderTime = %q, want 09:30", got[0].HeaderTime)
	}
	if got[1].ShowHeader {
		t.Error("client group should not show a header")
	}
	if got[1].HeaderTime != "09:31" {
		t.Errorf("HeaderTime = %q, want 09:31", got[1].HeaderTime)
	}
}

func TestGroupDeterministic(t *testing.T) {
	msgs := []Message{
		msg("a", RolePeer, 0),
		msg("b", RolePeer, 4*time.Minute),
		msg("c", RoleClient, 5*time.Minute),
		msg("d", RolePeer, 30*time.Minute),
	}
	first := Group(msgs, 5*time.Minute)
	second := Group(msgs, 5*time.Minute)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Group is not deterministic:\n%v\n%v", first, second)
	}
}

func TestGroupMinutes(t *testing.T) {
	msgs := []Message{msg("a", RolePeer, 0), msg("b", RolePeer, 90*time.Second)}
	if got := GroupMinutes(msgs, 1.5); len(got) != 1 {
		t.Errorf("GroupMinutes(1.5) = %v groups, want 1", len(got))
	}
	if got := GroupMinutes(msgs, 1); len(got) != 2 {
		t.Errorf("GroupMinutes(1) = %v groups, want 2", len(got))
	}
}
