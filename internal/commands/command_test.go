package commands

import (
	"testing"
)

var (
	anyone      = Caller{}
	moderator   = Caller{IsModerator: true}
	broadcaster = Caller{IsBroadcaster: true}
)

func TestRender_SubstitutesNamedArgs(t *testing.T) {
	d := Definition{Trigger: "!hi", Reply: "hello {name}", Args: []string{"name"}}

	got, ok := d.Render([]string{"bob"}, anyone)
	if !ok {
		t.Fatal("expected a reply")
	}
	if got != "hello bob" {
		t.Errorf("expected 'hello bob', got %q", got)
	}
}

func TestRender_NoArgsDeclaredIsVerbatim(t *testing.T) {
	d := Definition{Trigger: "!hi", Reply: "hello {name}"}

	for _, args := range [][]string{nil, {}, {"bob"}, {"bob", "alice"}} {
		got, ok := d.Render(args, anyone)
		if !ok {
			t.Fatalf("expected a reply for args %v", args)
		}
		if got != "hello {name}" {
			t.Errorf("args %v: expected template verbatim, got %q", args, got)
		}
	}
}

func TestRender_Pairing(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		names []string
		args  []string
		want  string
	}{
		{"fewer args than names", "{a} and {b}", []string{"a", "b"}, []string{"x"}, "x and {b}"},
		{"more args than names", "{a}!", []string{"a"}, []string{"x", "y", "z"}, "x!"},
		{"no args supplied", "{a}", []string{"a"}, nil, "{a}"},
		{"repeated placeholder", "{a}{a} {a}", []string{"a"}, []string{"x"}, "xx x"},
		{"undeclared placeholder kept", "{a} {c}", []string{"a"}, []string{"x"}, "x {c}"},
		{"positional order", "{second} {first}", []string{"first", "second"}, []string{"1", "2"}, "2 1"},
		{"nested braces", "{{a}}", []string{"a"}, []string{"x"}, "{x}"},
		{"template without placeholders", "static", []string{"a"}, []string{"x"}, "static"},
		{"first declaration wins", "{a}", []string{"a", "a"}, []string{"x", "y"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Definition{Trigger: "!t", Reply: tt.reply, Args: tt.names}
			got, ok := d.Render(tt.args, anyone)
			if !ok {
				t.Fatal("expected a reply")
			}
			if got != tt.want {
				t.Errorf("Render(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestRender_ValuesAreNotExpanded(t *testing.T) {
	d := Definition{Trigger: "!so", Reply: "{a} / {b}", Args: []string{"a", "b"}}

	got, _ := d.Render([]string{"{b}", "y"}, anyone)
	if got != "{b} / y" {
		t.Errorf("expected inserted value to stay literal, got %q", got)
	}

	got, _ = d.Render([]string{"x", "{a}"}, anyone)
	if got != "x / {a}" {
		t.Errorf("expected inserted value to stay literal, got %q", got)
	}
}

func TestRender_ModeratorOnly(t *testing.T) {
	d := Definition{Trigger: "!ban", Reply: "banned {who}", Args: []string{"who"}, Roles: []Role{Moderator}}

	if _, ok := d.Render([]string{"bob"}, Caller{IsBroadcaster: true}); ok {
		t.Error("broadcaster must not satisfy a moderator-only command")
	}
	if _, ok := d.Render([]string{"bob"}, anyone); ok {
		t.Error("regular user must not satisfy a moderator-only command")
	}

	got, ok := d.Render([]string{"bob"}, moderator)
	if !ok {
		t.Fatal("moderator should be permitted")
	}
	if got != "banned bob" {
		t.Errorf("expected 'banned bob', got %q", got)
	}
}

func TestRender_Idempotent(t *testing.T) {
	d := Definition{Trigger: "!hi", Reply: "hi {a} {b}", Args: []string{"a", "b"}}
	args := []string{"x", "y"}

	first, ok1 := d.Render(args, anyone)
	second, ok2 := d.Render(args, anyone)
	if first != second || ok1 != ok2 {
		t.Errorf("render not idempotent: %q/%v vs %q/%v", first, ok1, second, ok2)
	}
	if d.Reply != "hi {a} {b}" {
		t.Errorf("template was mutated: %q", d.Reply)
	}
}

func TestIsPermitted(t *testing.T) {
	tests := []struct {
		name   string
		roles  []Role
		caller Caller
		want   bool
	}{
		{"no restriction", nil, anyone, true},
		{"empty role set permits nobody", []Role{}, broadcaster, false},
		{"user role permits everyone", []Role{RegularUser}, anyone, true},
		{"broadcaster only, broadcaster", []Role{Broadcaster}, broadcaster, true},
		{"broadcaster only, moderator", []Role{Broadcaster}, moderator, false},
		{"moderator only, broadcaster", []Role{Moderator}, broadcaster, false},
		{"moderator or broadcaster, broadcaster", []Role{Moderator, Broadcaster}, broadcaster, true},
		{"moderator or broadcaster, moderator", []Role{Moderator, Broadcaster}, moderator, true},
		{"moderator or broadcaster, user", []Role{Moderator, Broadcaster}, anyone, false},
		{"vip only, vip", []Role{VIP}, Caller{IsVIP: true}, true},
		{"subscriber only, moderator", []Role{Subscriber}, moderator, false},
		{"subscriber only, subscriber", []Role{Subscriber}, Caller{IsSubscriber: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Definition{Trigger: "!t", Reply: "ok", Roles: tt.roles}
			if got := d.IsPermitted(tt.caller); got != tt.want {
				t.Errorf("IsPermitted(%+v) = %v, want %v", tt.caller, got, tt.want)
			}
		})
	}
}
