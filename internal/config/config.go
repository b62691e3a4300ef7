package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	BaseURL   string `env:"BASE_URL"`
	StorePath string `env:"STORE_PATH" envDefault:"orders.db"`

	// Delay between a paid webhook and the provisioning attempt, so the
	// webhook response is never blocked on the panel API.
	ProvisionDelay time.Duration `env:"PROVISION_DELAY" envDefault:"3s"`

	Pakasir     Pakasir     `envPrefix:"PAKASIR_"`
	Pterodactyl Pterodactyl `envPrefix:"PTERODACTYL_"`
	Telegram    Telegram    `envPrefix:"TELEGRAM_"`
	Pricing     Pricing     `envPrefix:"PRICE_"`
}

type Pakasir struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://app.pakasir.com"`
	Project    string `env:"PROJECT"`
	APIKey     string `env:"API_KEY"`
	QRBaseURL  string `env:"QR_BASE_URL" envDefault:"https://quickchart.io/qr"`
}

type Pterodactyl struct {
	BaseApiURL  string `env:"BASE_API_URL"`
	AppToken    string `env:"APP_TOKEN"`
	PanelURL    string `env:"PANEL_URL"`
	EggID       int    `env:"EGG_ID"`
	LocationID  int    `env:"LOCATION_ID"`
	DockerImage string `env:"DOCKER_IMAGE" envDefault:"ghcr.io/parkervcp/yolks:nodejs_20"`
	StartupCmd  string `env:"STARTUP_CMD" envDefault:"npm install && npm start"`
	EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"panel.novabot"`
}

type Telegram struct {
	Token       string `env:"TOKEN"`
	OwnerChatID string `env:"OWNER_CHAT_ID"`
	ShopURL     string `env:"SHOP_URL"`
}

// Pricing holds the per-tier price in whole rupiah. A tier priced at zero or
// below is treated as not for sale.
type Pricing struct {
	GB1  int `env:"1GB" envDefault:"500"`
	GB2  int `env:"2GB" envDefault:"500"`
	GB3  int `env:"3GB" envDefault:"500"`
	GB4  int `env:"4GB" envDefault:"500"`
	GB5  int `env:"5GB" envDefault:"500"`
	GB6  int `env:"6GB" envDefault:"500"`
	GB7  int `env:"7GB" envDefault:"500"`
	GB8  int `env:"8GB" envDefault:"500"`
	GB9  int `env:"9GB" envDefault:"500"`
	GB10 int `env:"10GB" envDefault:"500"`
	Unli int `env:"UNLI" envDefault:"500"`
}

// Map returns the price table keyed by canonical tier name.
func (p Pricing) Map() map[string]int {
	return map[string]int{
		"1gb":  p.GB1,
		"2gb":  p.GB2,
		"3gb":  p.GB3,
		"4gb":  p.GB4,
		"5gb":  p.GB5,
		"6gb":  p.GB6,
		"7gb":  p.GB7,
		"8gb":  p.GB8,
		"9gb":  p.GB9,
		"10gb": p.GB10,
		"unli": p.Unli,
	}
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
