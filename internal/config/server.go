package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "MOBPATCH_CONFIG"

// DefaultConfigPath is used when EnvConfigPath is unset.
const DefaultConfigPath = "config/mobserver.yaml"

// Faction sources.
const (
	FactionSourceYAML     = "yaml"
	FactionSourceDatabase = "database"
)

// Server holds all configuration for the simulation server.
type Server struct {
	LogLevel     string        `yaml:"log_level"` // debug|info|warn|error
	TickInterval time.Duration `yaml:"tick_interval"`
	// RespawnDelay is how long a dead mob's spawn point stays empty.
	RespawnDelay time.Duration `yaml:"respawn_delay"`

	Tracker  Tracker        `yaml:"tracker"`
	Database DatabaseConfig `yaml:"database"`
	Factions Factions       `yaml:"factions"`

	Templates []MobTemplate `yaml:"templates"`
	Spawns    []SpawnEntry  `yaml:"spawns"`
}

// Tracker configures the observer listener.
type Tracker struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	// SessionKey is the hex-encoded 16-byte Blowfish key shared with observers.
	SessionKey    string        `yaml:"session_key"`
	SendQueueSize int           `yaml:"send_queue_size"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port of the listener.
func (t Tracker) Addr() string {
	return fmt.Sprintf("%s:%d", t.BindAddress, t.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	// MaxConns caps the pool; 0 keeps the pgx default.
	MaxConns int32 `yaml:"max_conns"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Factions selects where template factions come from.
type Factions struct {
	Source string `yaml:"source"` // yaml|database
	Path   string `yaml:"path"`   // faction table for the yaml source
	Watch  bool   `yaml:"watch"`  // reload the yaml table on change
}

// MobTemplate describes a spawnable mob.
type MobTemplate struct {
	ID           int32   `yaml:"id"`
	Name         string  `yaml:"name"`
	Style        string  `yaml:"style"` // passive|melee|ranged
	Weapon       string  `yaml:"weapon"`
	MaxHealth    float32 `yaml:"max_health"`
	EyeHeight    float64 `yaml:"eye_height"`
	AggroRange   float64 `yaml:"aggro_range"`
	MoveSpeed    float64 `yaml:"move_speed"`
	AttackDamage float64 `yaml:"attack_damage"`
	StunArmor    float64 `yaml:"stun_armor"`
}

// SpawnEntry places Count mobs of a template around a point.
type SpawnEntry struct {
	TemplateID int32   `yaml:"template_id"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Z          float64 `yaml:"z"`
	Count      int     `yaml:"count"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:     "info",
		TickInterval: 50 * time.Millisecond,
		RespawnDelay: 10 * time.Second,
		Tracker: Tracker{
			BindAddress:   "0.0.0.0",
			Port:          7780,
			SessionKey:    "6b60cb5b82ce90b1cc2b6c556c6c6c6c",
			SendQueueSize: 256,
			WriteTimeout:  5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "mobpatch",
			Password: "mobpatch",
			DBName:   "mobpatch",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Factions: Factions{
			Source: FactionSourceYAML,
			Path:   "config/factions.yaml",
		},
		Templates: []MobTemplate{
			{ID: 1, Name: "Zombie", Style: "melee", Weapon: "sword", MaxHealth: 20, EyeHeight: 1.74, AggroRange: 16, MoveSpeed: 0.23, AttackDamage: 3},
			{ID: 2, Name: "Skeleton", Style: "ranged", Weapon: "bow", MaxHealth: 20, EyeHeight: 1.74, AggroRange: 16, MoveSpeed: 0.25, AttackDamage: 2},
			{ID: 3, Name: "Pillager", Style: "ranged", Weapon: "crossbow", MaxHealth: 24, EyeHeight: 1.62, AggroRange: 16, MoveSpeed: 0.35, AttackDamage: 4},
			{ID: 4, Name: "Villager", Style: "passive", MaxHealth: 20, EyeHeight: 1.62, AggroRange: 0, MoveSpeed: 0.2},
		},
	}
}

// Validate checks fields that would fail later at startup.
func (s Server) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", s.TickInterval)
	}
	if s.RespawnDelay < 0 {
		return fmt.Errorf("respawn_delay must not be negative, got %v", s.RespawnDelay)
	}
	switch s.Factions.Source {
	case FactionSourceYAML, FactionSourceDatabase:
	default:
		return fmt.Errorf("unknown faction source %q", s.Factions.Source)
	}
	ids := make(map[int32]struct{}, len(s.Templates))
	for _, t := range s.Templates {
		if _, dup := ids[t.ID]; dup {
			return fmt.Errorf("duplicate template id %d", t.ID)
		}
		ids[t.ID] = struct{}{}
	}
	for _, sp := range s.Spawns {
		if _, ok := ids[sp.TemplateID]; !ok {
			return fmt.Errorf("spawn references unknown template %d", sp.TemplateID)
		}
	}
	return nil
}

// ConfigPath returns the path from EnvConfigPath or the default.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
