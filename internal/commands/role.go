package commands

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is a capability a caller may or may not hold. Roles are flat: holding
// one never implies holding another.
type Role int

const (
	RegularUser Role = iota
	Broadcaster
	Moderator
	VIP
	Subscriber
)

// Caller carries the role flags the transport reported for one message.
type Caller struct {
	IsBroadcaster bool
	IsModerator   bool
	IsVIP         bool
	IsSubscriber  bool
}

// SatisfiedBy reports whether the caller holds this role.
func (r Role) SatisfiedBy(c Caller) bool {
	switch r {
	case RegularUser:
		return true
	case Broadcaster:
		return c.IsBroadcaster
	case Moderator:
		return c.IsModerator
	case VIP:
		return c.IsVIP
	case Subscriber:
		return c.IsSubscriber
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RegularUser:
		return "User"
	case Broadcaster:
		return "Broadcaster"
	case Moderator:
		return "Mod"
	case VIP:
		return "VIP"
	case Subscriber:
		return "Subscriber"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole accepts the spellings used in command files, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "regularuser", "everyone":
		return RegularUser, nil
	case "broadcaster":
		return Broadcaster, nil
	case "mod", "moderator":
		return Moderator, nil
	case "vip":
		return VIP, nil
	case "subscriber", "sub":
		return Subscriber, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r *Role) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = parsed
	return nil
}

func (r Role) MarshalYAML() (any, error) {
	return r.String(), nil
}
