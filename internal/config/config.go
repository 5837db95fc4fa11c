package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTokenURL   = "https://id.twitch.tv/oauth2/token"
	DefaultConfigFile = "bytebot.yaml"
)

type Configuration struct {
	Server *ServerConfig
	Auth   *AuthConfig
	Bot    *BotConfig
}

type ServerConfig struct {
	Nick        string
	Server      string
	Port        int
	Channel     string
	SSL         bool
	TLSInsecure bool
	MaxRetries  int
	RetryDelay  time.Duration
}

type AuthConfig struct {
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

type BotConfig struct {
	Commands    string
	Verbose     bool
	ChunkMax    int
	MetricsAddr string
}

// YamlSource implements cli.ValueSource for a map loaded from YAML. Keys are
// tried in order, so a flag can also be read under the snake_case names used
// by older config files.
type YamlSource struct {
	data map[string]any
	keys []string
}

func (y *YamlSource) Lookup() (string, bool) {
	for _, key := range y.keys {
		v, ok := y.data[key]
		if !ok || v == nil {
			continue
		}
		if slice, ok := v.([]any); ok {
			var strs []string
			for _, item := range slice {
				strs = append(strs, fmt.Sprintf("%v", item))
			}
			return strings.Join(strs, ","), true
		}
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

func (y *YamlSource) String() string   { return "yaml" }
func (y *YamlSource) GoString() string { return "yaml" }

// GetFlags returns the bot's flags. Values resolve as env var, then the YAML
// config file, then the flag default.
func GetFlags() []cli.Flag {
	configData := readConfigData(getConfigPath(os.Args))

	src := func(key string, env string, aliases ...string) cli.ValueSourceChain {
		chain := cli.ValueSourceChain{}
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
		if configData != nil {
			chain.Chain = append(chain.Chain, &YamlSource{data: configData, keys: append([]string{key}, aliases...)})
		}
		return chain
	}

	return []cli.Flag{
		// Config file
		&cli.StringFlag{Name: "config", Aliases: []string{"b"}, Usage: "use the named configuration file", Sources: cli.EnvVars("BYTEBOT_CONFIG")},

		// Chat connection
		&cli.StringFlag{Name: "nick", Aliases: []string{"n"}, Value: "bytebot", Usage: "bot's login name on the chat server", Sources: src("nick", "BYTEBOT_NICK")},
		&cli.StringFlag{Name: "server", Aliases: []string{"s"}, Value: "irc.chat.twitch.tv", Usage: "chat server address", Sources: src("server", "BYTEBOT_SERVER")},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 6697, Usage: "chat server port", Sources: src("port", "BYTEBOT_PORT")},
		&cli.BoolFlag{Name: "tls", Aliases: []string{"e"}, Value: true, Usage: "enable TLS for the chat connection", Sources: src("tls", "BYTEBOT_TLS")},
		&cli.BoolFlag{Name: "tlsinsecure", Usage: "skip TLS certificate verification", Sources: src("tlsinsecure", "BYTEBOT_TLSINSECURE")},
		&cli.StringFlag{Name: "channel", Aliases: []string{"c"}, Usage: "channel to join", Sources: src("channel", "BYTEBOT_CHANNEL")},
		&cli.IntFlag{Name: "maxretries", Value: 5, Usage: "connection attempts before giving up", Sources: src("maxretries", "BYTEBOT_MAXRETRIES")},
		&cli.DurationFlag{Name: "retrydelay", Value: 5 * time.Second, Usage: "wait between connection attempts", Sources: src("retrydelay", "BYTEBOT_RETRYDELAY")},

		// Credentials
		&cli.StringFlag{Name: "accesstoken", Usage: "chat OAuth access token", Sources: src("accesstoken", "BYTEBOT_ACCESSTOKEN", "access_token")},
		&cli.StringFlag{Name: "refreshtoken", Usage: "OAuth refresh token used to obtain a fresh access token", Sources: src("refreshtoken", "BYTEBOT_REFRESHTOKEN", "refresh_token")},
		&cli.StringFlag{Name: "clientid", Usage: "OAuth application client ID", Sources: src("clientid", "BYTEBOT_CLIENTID", "client_id")},
		&cli.StringFlag{Name: "clientsecret", Usage: "OAuth application client secret", Sources: src("clientsecret", "BYTEBOT_CLIENTSECRET", "client_secret")},
		&cli.StringFlag{Name: "tokenurl", Value: DefaultTokenURL, Usage: "OAuth token endpoint", Sources: src("tokenurl", "BYTEBOT_TOKENURL", "token_url")},

		// Bot behaviour
		&cli.StringFlag{Name: "commands", Aliases: []string{"f"}, Value: "commands.yaml", Usage: "command definitions file", Sources: src("commands", "BYTEBOT_COMMANDS")},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"V"}, Usage: "enable verbose logging", Sources: src("verbose", "BYTEBOT_VERBOSE")},
		&cli.IntFlag{Name: "chunkmax", Aliases: []string{"m"}, Value: 500, Usage: "maximum number of characters to send as a single message", Sources: src("chunkmax", "BYTEBOT_CHUNKMAX")},
		&cli.StringFlag{Name: "metricsaddr", Usage: "serve prometheus metrics on this address (disabled when empty)", Sources: src("metricsaddr", "BYTEBOT_METRICSADDR")},
	}
}

func readConfigData(path string) map[string]any {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v\n", path, err)
		return nil
	}
	var configData map[string]any
	if err := yaml.Unmarshal(data, &configData); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", path, err)
		return nil
	}
	return configData
}

// getConfigPath finds the config file before flags are parsed, so its values
// can back the flag defaults. bytebot.yaml in the working directory is used
// when nothing is named.
func getConfigPath(args []string) string {
	if v := os.Getenv("BYTEBOT_CONFIG"); v != "" {
		return v
	}
	for i, arg := range args {
		if arg == "--config" || arg == "-b" {
			if i+1 < len(args) {
				return args[i+1]
			}
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

func NewConfiguration(c *cli.Command) *Configuration {
	if c.IsSet("config") {
		zap.S().Infow("config_file", "path", c.String("config"))
	}

	return &Configuration{
		Server: &ServerConfig{
			Nick:        strings.ToLower(c.String("nick")),
			Server:      c.String("server"),
			Port:        int(c.Int("port")),
			Channel:     NormalizeChannel(c.String("channel")),
			SSL:         c.Bool("tls"),
			TLSInsecure: c.Bool("tlsinsecure"),
			MaxRetries:  int(c.Int("maxretries")),
			RetryDelay:  c.Duration("retrydelay"),
		},
		Auth: &AuthConfig{
			AccessToken:  c.String("accesstoken"),
			RefreshToken: c.String("refreshtoken"),
			ClientID:     c.String("clientid"),
			ClientSecret: c.String("clientsecret"),
			TokenURL:     c.String("tokenurl"),
		},
		Bot: &BotConfig{
			Commands:    c.String("commands"),
			Verbose:     c.Bool("verbose"),
			ChunkMax:    int(c.Int("chunkmax")),
			MetricsAddr: c.String("metricsaddr"),
		},
	}
}

// NormalizeChannel lowercases a channel name and adds the leading '#'.
func NormalizeChannel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}
	return strings.ToLower(name)
}

// CanRefresh reports whether enough is configured to exchange the refresh
// token for a new access token.
func (a *AuthConfig) CanRefresh() bool {
	return a.RefreshToken != "" && a.ClientID != "" && a.ClientSecret != ""
}

// Validate reports every missing or out-of-range setting at once.
func (c *Configuration) Validate() error {
	var errs []error
	if c.Server.Nick == "" {
		errs = append(errs, errors.New("nick is required"))
	}
	if c.Server.Channel == "" {
		errs = append(errs, errors.New("channel is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Server.Port))
	}
	if c.Auth.AccessToken == "" && !c.Auth.CanRefresh() {
		errs = append(errs, errors.New("accesstoken, or refreshtoken with clientid and clientsecret, is required"))
	}
	if c.Bot.Commands == "" {
		errs = append(errs, errors.New("commands file is required"))
	}
	if c.Bot.ChunkMax <= 0 {
		errs = append(errs, fmt.Errorf("invalid chunkmax %d", c.Bot.ChunkMax))
	}
	return errors.Join(errs...)
}

// LogConfig writes the effective configuration at debug level with secrets masked.
func (c *Configuration) LogConfig(logger *zap.SugaredLogger) {
	logger.Debugw("configuration",
		"nick", c.Server.Nick,
		"server", c.Server.Server,
		"port", c.Server.Port,
		"channel", c.Server.Channel,
		"tls", c.Server.SSL,
		"tlsinsecure", c.Server.TLSInsecure,
		"maxretries", c.Server.MaxRetries,
		"retrydelay", c.Server.RetryDelay,
		"accesstoken", MaskSecret(c.Auth.AccessToken),
		"refreshtoken", MaskSecret(c.Auth.RefreshToken),
		"clientid", c.Auth.ClientID,
		"clientsecret", MaskSecret(c.Auth.ClientSecret),
		"tokenurl", c.Auth.TokenURL,
		"commands", c.Bot.Commands,
		"chunkmax", c.Bot.ChunkMax,
		"metricsaddr", c.Bot.MetricsAddr,
	)
}

// MaskSecret returns a masked version of a secret showing only first 4 chars
func MaskSecret(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
