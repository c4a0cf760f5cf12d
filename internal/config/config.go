package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	Address          string        `env:"RUN_ADDRESS"           envDefault:"localhost:8080"`
	LedgerAddress    string        `env:"LEDGER_ADDRESS"        envDefault:"https://tagwaiter.ru/api"`
	ToncenterAddress string        `env:"TONCENTER_ADDRESS"`
	ToncenterAPIKey  string        `env:"TONCENTER_API_KEY"`
	LiteConfigURL    string        `env:"TON_CONFIG_URL"`
	Testnet          bool          `env:"TESTNET"               envDefault:"false"`
	WalletSeed       string        `env:"WALLET_SEED"`
	WalletAddress    string        `env:"WALLET_ADDRESS"`
	StatePath        string        `env:"STATE_PATH"            envDefault:"billsplit.db"`
	LogLvl           string        `env:"LOG_LVL"               envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT"            envDefault:"console"`
	TransferTTL      time.Duration `env:"TRANSFER_TTL"          envDefault:"5m"`
	RefundFee        uint64        `env:"REFUND_FEE"            envDefault:"50000000"`
	ReconnectDelay   time.Duration `env:"WS_RECONNECT_DELAY"    envDefault:"2s"`
	PollInterval     time.Duration `env:"POLL_INTERVAL"         envDefault:"10s"`
	ResyncInterval   time.Duration `env:"CLOCK_RESYNC_INTERVAL" envDefault:"2m"`
	CacheStaleAfter  time.Duration `env:"CACHE_STALE_AFTER"     envDefault:"5s"`
	PayloadNonce     bool          `env:"PAYLOAD_NONCE"         envDefault:"true"`
	BotUsername      string        `env:"BOT_USERNAME"          envDefault:"CryptoSplitBot"`
	BotAppName       string        `env:"BOT_APP_NAME"`
}

const (
	toncenterMainnet  = "https://toncenter.com"
	toncenterTestnet  = "https://testnet.toncenter.com"
	liteConfigMainnet = "https://ton.org/global.config.json"
	liteConfigTestnet = "https://ton.org/testnet-global.config.json"
)

// New reads .env (if present) and the environment. Flags bound with BindFlags override it afterwards.
func New() *Config {
	cfg := &Config{}

	_ = godotenv.Load()
	env.Parse(cfg)

	return cfg
}

func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Address, "address", "a", c.Address, "address and port of the local view API")
	fs.StringVarP(&c.LedgerAddress, "ledger", "r", c.LedgerAddress, "ledger backend address")
	fs.StringVar(&c.ToncenterAddress, "toncenter", c.ToncenterAddress, "toncenter API address")
	fs.StringVar(&c.ToncenterAPIKey, "toncenter-key", c.ToncenterAPIKey, "toncenter API key")
	fs.BoolVar(&c.Testnet, "testnet", c.Testnet, "use TON testnet")
	fs.StringVar(&c.WalletAddress, "wallet", c.WalletAddress, "watch-only wallet address when no seed is set")
	fs.StringVarP(&c.StatePath, "state", "s", c.StatePath, "local state file")
	fs.StringVarP(&c.LogLvl, "log-level", "l", c.LogLvl, "log level")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log encoding: console or json")
	fs.DurationVar(&c.TransferTTL, "transfer-ttl", c.TransferTTL, "validity window of wallet transfers")
	fs.DurationVar(&c.PollInterval, "poll", c.PollInterval, "fallback polling interval")
	fs.BoolVar(&c.PayloadNonce, "payload-nonce", c.PayloadNonce, "append a query id to transfer payloads")
}

// Normalize fills network dependent defaults and adds a scheme to bare host:port addresses.
func (c *Config) Normalize() {
	if c.ToncenterAddress == "" {
		c.ToncenterAddress = toncenterMainnet
		if c.Testnet {
			c.ToncenterAddress = toncenterTestnet
		}
	}
	if c.LiteConfigURL == "" {
		c.LiteConfigURL = liteConfigMainnet
		if c.Testnet {
			c.LiteConfigURL = liteConfigTestnet
		}
	}
	c.LedgerAddress = strings.TrimRight(withScheme(c.LedgerAddress), "/")
	c.ToncenterAddress = strings.TrimRight(withScheme(c.ToncenterAddress), "/")
}

func withScheme(addr string) string {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		return "http://" + addr
	}
	return addr
}
