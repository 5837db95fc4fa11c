package irc

import (
	"strings"

	"github.com/lrstanley/girc"

	"pkdindustries/bytebot/internal/commands"
	"pkdindustries/bytebot/internal/core"
)

// ParseBadges splits a Twitch badges tag ("broadcaster/1,subscriber/12")
// into badge name -> version.
func ParseBadges(tag string) map[string]string {
	badges := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		if part == "" {
			continue
		}
		name, version, _ := strings.Cut(part, "/")
		badges[name] = version
	}
	return badges
}

// CallerFromTags derives the caller's roles from the message tags. Badges
// are authoritative; the older mod/vip/subscriber flags are honoured too.
func CallerFromTags(tags girc.Tags) commands.Caller {
	raw, _ := tags.Get("badges")
	badges := ParseBadges(raw)

	has := func(badge string) bool {
		_, ok := badges[badge]
		return ok
	}
	flag := func(key string) bool {
		v, ok := tags.Get(key)
		return ok && v == "1"
	}

	return commands.Caller{
		IsBroadcaster: has("broadcaster"),
		IsModerator:   has("moderator") || flag("mod"),
		IsVIP:         has("vip") || flag("vip"),
		IsSubscriber:  has("subscriber") || has("founder") || flag("subscriber"),
	}
}

// MessageFromEvent converts a channel PRIVMSG into a chat message. Private
// messages and other commands are rejected.
func MessageFromEvent(e *girc.Event) (*core.ChatMessage, bool) {
	if e == nil || e.Command != girc.PRIVMSG || len(e.Params) < 2 {
		return nil, false
	}
	channel := e.Params[0]
	if CheckPrivate(channel) {
		return nil, false
	}

	msg := &core.ChatMessage{
		Channel: channel,
		Text:    e.Last(),
	}
	if e.Source != nil {
		msg.Source = e.Source.Name
	}
	if e.Tags != nil {
		msg.Caller = CallerFromTags(e.Tags)
	}
	return msg, true
}

// FormatOAuthToken returns the server password form of an access token.
func FormatOAuthToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.HasPrefix(token, "oauth:") {
		return token
	}
	return "oauth:" + token
}

// CheckPrivate returns true if target is not a channel (doesn't start with #).
func CheckPrivate(target string) bool {
	return !strings.HasPrefix(target, "#")
}
