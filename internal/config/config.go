package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Recording   RecordingConfig   `yaml:"recording"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Summary     SummaryConfig     `yaml:"summary"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type RecordingConfig struct {
	SampleRate         int     `yaml:"sample_rate"`
	BlockSeconds       float64 `yaml:"block_seconds"`
	MaxDurationSeconds float64 `yaml:"max_duration_seconds"`
	Device             string  `yaml:"device"`
}

type WhisperConfig struct {
	Backend    string `yaml:"backend"`
	BinaryPath string `yaml:"binary_path"`
	ModelsDir  string `yaml:"models_dir"`
	Model      string `yaml:"model"`
	FFmpegPath string `yaml:"ffmpeg_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
}

type SummaryConfig struct {
	Backend   string   `yaml:"backend"`
	Model     string   `yaml:"model"`
	BaseURL   string   `yaml:"base_url"`
	MinWords  int      `yaml:"min_words"`
	MinLength int      `yaml:"min_length"`
	MaxLength int      `yaml:"max_length"`
	APIKeys   []string `yaml:"api_keys"`
}

type PathsConfig struct {
	Inbox  string `yaml:"inbox"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

var modelSizes = []string{"tiny", "base", "small", "medium", "large"}

// Load reads the YAML file at path and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv fills API keys from the environment when the file has none.
func (c *Config) applyEnv() {
	if c.Whisper.APIKey == "" {
		c.Whisper.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if len(c.Summary.APIKeys) > 0 {
		return
	}

	switch c.Summary.Backend {
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.Summary.APIKeys = []string{key}
		}
	default:
		for _, key := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
			if key = strings.TrimSpace(key); key != "" {
				c.Summary.APIKeys = append(c.Summary.APIKeys, key)
			}
		}
	}
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Whisper.Backend == "" {
		c.Whisper.Backend = "whispercpp"
	}
	switch c.Whisper.Backend {
	case "whispercpp":
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
		if c.Whisper.ModelsDir == "" {
			return fmt.Errorf("whisper.models_dir is required")
		}
	case "openai":
	default:
		return fmt.Errorf("whisper.backend %q is not supported", c.Whisper.Backend)
	}

	if c.Whisper.FFmpegPath == "" {
		c.Whisper.FFmpegPath = "ffmpeg"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if !validModel(c.Whisper.Model) {
		return fmt.Errorf("whisper.model must be one of %s", strings.Join(modelSizes, ", "))
	}

	if c.Summary.Backend == "" {
		c.Summary.Backend = "gemini"
	}
	if c.Summary.Backend != "gemini" && c.Summary.Backend != "openai" {
		return fmt.Errorf("summary.backend %q is not supported", c.Summary.Backend)
	}

	if c.Recording.SampleRate == 0 {
		c.Recording.SampleRate = 16000
	}
	if c.Recording.SampleRate != 16000 {
		return fmt.Errorf("recording.sample_rate must be 16000, got %d", c.Recording.SampleRate)
	}
	if c.Recording.BlockSeconds == 0 {
		c.Recording.BlockSeconds = 1
	}
	if c.Recording.MaxDurationSeconds == 0 {
		c.Recording.MaxDurationSeconds = 180
	}
	if c.Recording.BlockSeconds < 0 || c.Recording.MaxDurationSeconds < 0 {
		return fmt.Errorf("recording durations must be positive")
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Summary.MinWords == 0 {
		c.Summary.MinWords = 90
	}
	if c.Summary.MinLength == 0 {
		c.Summary.MinLength = 90
	}
	if c.Summary.MaxLength == 0 {
		c.Summary.MaxLength = 220
	}
	if c.Summary.MinLength > c.Summary.MaxLength {
		return fmt.Errorf("summary.min_length must not exceed summary.max_length")
	}
	if c.Summary.Model == "" {
		if c.Summary.Backend == "openai" {
			c.Summary.Model = "gpt-4o-mini"
		} else {
			c.Summary.Model = "gemini-2.5-flash"
		}
	}

	return nil
}

// BlockDuration is the length of one capture block.
func (r RecordingConfig) BlockDuration() time.Duration {
	return time.Duration(r.BlockSeconds * float64(time.Second))
}

// MaxDuration is the recording cap.
func (r RecordingConfig) MaxDuration() time.Duration {
	return time.Duration(r.MaxDurationSeconds * float64(time.Second))
}

func validModel(m string) bool {
	for _, s := range modelSizes {
		if s == m {
			return true
		}
	}
	return false
}
