// Package config loads tripboard settings and the page copy that is not
// part of the itinerary document.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all tripboard configuration.
type Config struct {
	// Storage for saved snapshots.
	DBPath string `yaml:"db_path"`

	// Default HTML output path for render.
	OutputPath string `yaml:"output_path"`

	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Content ContentConfig `yaml:"content"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	WatchDebounce  string   `yaml:"watch_debounce"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Tip is a titled piece of advice shown on the page.
type Tip struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// ContentConfig is the fixed page copy: overview lists, operating tips and
// the messages used when a computed list comes out empty.
type ContentConfig struct {
	Pace          []string `yaml:"pace"`
	Risks         []string `yaml:"risks"`
	Tweaks        []string `yaml:"tweaks"`
	OpsTips       []Tip    `yaml:"ops_tips"`
	TightFallback string   `yaml:"tight_fallback"`
	WalkFallback  string   `yaml:"walk_fallback"`
	LoadError     string   `yaml:"load_error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DBPath:     filepath.Join(home, ".tripboard", "tripboard.db"),
		OutputPath: "index.html",
		Server: ServerConfig{
			Addr:          "127.0.0.1:8080",
			WatchDebounce: "300ms",
		},
		Logging: LoggingConfig{Level: "info"},
		Content: ContentConfig{
			Pace: []string{
				"抵達日＋京都站周邊晚餐：留有緩衝，親子友善。",
				"清水寺/祇園日：動線順但步行多，建議早出發避人潮。",
				"伏見稻荷＋宇治＋奈良同日：對 2 大 2 小偏緊湊，務必保留可刪點。",
				"大阪段落以室內景點作為雨備：策略正確。",
			},
			Risks: []string{
				"東山、伏見稻荷多階梯與坡道：推車行動成本高。",
				"京都市巴士尖峰易塞車：請保留轉乘與排隊時間。",
				"奈良餵鹿：小孩需成人陪同、餅乾收好避免被追。",
				"熱門景點（大阪城、海遊館）可能排隊：建議線上票或一早/傍晚入場。",
			},
			Tweaks: []string{
				"把每天分成：今日重點（不刪）＋順遊（可刪）＋交通控時＋餐食。",
				"跨區日（京都/宇治/奈良）若超時：先保留今日重點，其餘點直接跳過。",
				"排隊>30分鐘：啟用備案（室內點或商圈）。",
				"每 90 分鐘安排休息/點心，下午保留室內或商圈降低情緒成本。",
			},
			OpsTips: []Tip{
				{Title: "交通與步行", Body: "Google Maps 到站後步行時間加 10–15 分鐘緩衝；京都公車塞車時，地鐵＋短程計程車常更快。"},
				{Title: "票券策略", Body: "大阪付費景點多時再買周遊卡；只跑 1–2 個付費點，單買門票＋刷卡/地鐵票更彈性。"},
				{Title: "親子節奏", Body: "上午跑重點、下午留室內或商圈；每 90 分鐘補水/點心一次。"},
				{Title: "用餐", Body: "熱門店以「開店即到」或「離峰」為原則；若排隊過長，直接啟用備案。"},
			},
			TightFallback: "沒有跨區緊湊日，節奏相對寬鬆。",
			WalkFallback:  "步行多的日子：上午跑重點、下午留室內或休息，每 90 分鐘補水/點心。",
			LoadError:     "資料載入失敗，請確認 data.json 與檔案路徑。",
		},
	}
}

// DefaultPath returns the config file location, honouring TRIPBOARD_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("TRIPBOARD_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tripboard.yaml"
	}
	return filepath.Join(home, ".tripboard", "config.yaml")
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRIPBOARD_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TRIPBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TRIPBOARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level: invalid value %q", c.Logging.Level)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
