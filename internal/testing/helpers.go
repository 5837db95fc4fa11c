package testing

import (
	"time"

	"pkdindustries/bytebot/internal/commands"
	"pkdindustries/bytebot/internal/config"
	"pkdindustries/bytebot/internal/core"
)

// DefaultTestConfig returns a minimal configuration for testing
func DefaultTestConfig() *config.Configuration {
	return &config.Configuration{
		Server: &config.ServerConfig{
			Nick:       "testbot",
			Server:     "irc.test.local",
			Port:       6667,
			Channel:    "#test",
			SSL:        false,
			MaxRetries: 1,
			RetryDelay: time.Millisecond,
		},
		Auth: &config.AuthConfig{
			AccessToken: "testtoken",
			TokenURL:    config.DefaultTokenURL,
		},
		Bot: &config.BotConfig{
			Commands: "commands.yaml",
			Verbose:  false,
			ChunkMax: 350,
		},
	}
}

// SampleDefinitions is a small command set covering plain, templated and
// role-restricted commands.
func SampleDefinitions() []commands.Definition {
	return []commands.Definition{
		{Trigger: "!discord", Reply: "join us at https://discord.gg/example"},
		{Trigger: "!hi", Reply: "hello {name}", Args: []string{"name"}},
		{Trigger: "!so", Reply: "go follow {user}", Args: []string{"user"}, Roles: []commands.Role{commands.Moderator, commands.Broadcaster}},
		{Trigger: "!subs", Reply: "thanks for subscribing", Roles: []commands.Role{commands.Subscriber}},
	}
}

// Callers for table tests.
var (
	Viewer      = commands.Caller{}
	Moderator   = commands.Caller{IsModerator: true}
	Broadcaster = commands.Caller{IsBroadcaster: true}
	Subscriber  = commands.Caller{IsSubscriber: true}
)

// NewMessage builds a chat message on the default test channel.
func NewMessage(text string, caller commands.Caller) *core.ChatMessage {
	return &core.ChatMessage{
		Channel: "#test",
		Source:  "testuser",
		Text:    text,
		Caller:  caller,
	}
}
