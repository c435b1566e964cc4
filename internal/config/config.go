package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AaronLay10/vacuumworld/internal/search"
	"github.com/AaronLay10/vacuumworld/internal/world"
)

var ErrInvalidProblem = errors.New("invalid problem")

// Cell is a [row, col] pair as written in YAML.
type Cell [2]int

func (c Cell) Position() world.Position {
	return world.Pos(c[0], c[1])
}

type Problem struct {
	Name  string `yaml:"name"`
	Start Cell   `yaml:"start"`
	Dirt  []Cell `yaml:"dirt"`
}

type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	Username    string `yaml:"username"`
	QoS         byte   `yaml:"qos"`

	// Retries is the number of delivery attempts per report, first
	// included.
	Retries int `yaml:"retries"`
}

// File is the versioned vacuum.yaml document.
type File struct {
	Version int `yaml:"version"`
	Grid    struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"grid"`
	Costs struct {
		Up    float64 `yaml:"up"`
		Down  float64 `yaml:"down"`
		Left  float64 `yaml:"left"`
		Right float64 `yaml:"right"`
		Suck  float64 `yaml:"suck"`
	} `yaml:"costs"`
	Search struct {
		MaxGenerated *int `yaml:"max_generated"`
		MaxDepth     int  `yaml:"max_depth"`
		TraceLimit   *int `yaml:"trace_limit"`
	} `yaml:"search"`
	Problems   []Problem `yaml:"problems"`
	Strategies []string  `yaml:"strategies"`
	Report     struct {
		Format string     `yaml:"format"`
		MQTT   MQTTConfig `yaml:"mqtt"`
	} `yaml:"report"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the reference 4x5 world with both reference problems and
// every strategy.
func Default() *File {
	f := &File{Version: 1}
	f.Problems = []Problem{
		{
			Name:  "problem1",
			Start: Cell{2, 2},
			Dirt:  []Cell{{1, 2}, {2, 4}, {3, 5}},
		},
		{
			Name:  "problem2",
			Start: Cell{3, 2},
			Dirt:  []Cell{{1, 2}, {2, 1}, {2, 4}, {3, 3}},
		},
	}
	f.applyDefaults()
	return f
}

func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported vacuum.yaml version: %d", f.Version)
	}

	f.applyDefaults()
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.Grid.Rows == 0 {
		f.Grid.Rows = world.DefaultRows
	}
	if f.Grid.Cols == 0 {
		f.Grid.Cols = world.DefaultCols
	}

	if f.Costs.Up == 0 {
		f.Costs.Up = world.CostUp
	}
	if f.Costs.Down == 0 {
		f.Costs.Down = world.CostDown
	}
	if f.Costs.Left == 0 {
		f.Costs.Left = world.CostLeft
	}
	if f.Costs.Right == 0 {
		f.Costs.Right = world.CostRight
	}
	if f.Costs.Suck == 0 {
		f.Costs.Suck = world.CostSuck
	}

	defaults := search.DefaultOptions()
	if f.Search.MaxGenerated == nil {
		f.Search.MaxGenerated = &defaults.MaxGenerated
	}
	if f.Search.TraceLimit == nil {
		f.Search.TraceLimit = &defaults.TraceLimit
	}

	if len(f.Strategies) == 0 {
		for _, s := range search.Strategies() {
			f.Strategies = append(f.Strategies, string(s))
		}
	}

	if f.Report.Format == "" {
		f.Report.Format = "text"
	}
	if f.Report.MQTT.ClientID == "" {
		f.Report.MQTT.ClientID = "vacuumworld"
	}
	if f.Report.MQTT.TopicPrefix == "" {
		f.Report.MQTT.TopicPrefix = "vacuumworld/results"
	}
	if f.Report.MQTT.Retries == 0 {
		f.Report.MQTT.Retries = 3
	}

	if f.Log.Level == "" {
		f.Log.Level = "info"
	}
	if f.Log.Format == "" {
		f.Log.Format = "console"
	}
}

// World builds and validates the grid and cost table.
func (f *File) World() (world.Config, error) {
	cfg := world.Config{
		Rows: f.Grid.Rows,
		Cols: f.Grid.Cols,
	}
	cfg.Costs[world.MoveUp] = f.Costs.Up
	cfg.Costs[world.MoveDown] = f.Costs.Down
	cfg.Costs[world.MoveLeft] = f.Costs.Left
	cfg.Costs[world.MoveRight] = f.Costs.Right
	cfg.Costs[world.Suck] = f.Costs.Suck

	if err := cfg.Validate(); err != nil {
		return world.Config{}, err
	}
	return cfg, nil
}

// SearchOptions returns the configured search limits.
func (f *File) SearchOptions() search.Options {
	opts := search.DefaultOptions()
	if f.Search.MaxGenerated != nil {
		opts.MaxGenerated = *f.Search.MaxGenerated
	}
	if f.Search.TraceLimit != nil {
		opts.TraceLimit = *f.Search.TraceLimit
	}
	opts.MaxDepth = f.Search.MaxDepth
	return opts
}

// NamedState is a validated problem instance.
type NamedState struct {
	Name  string
	Start world.State
}

// NamedStates validates every problem against the grid. Problems without
// a name are called problemN by their 1-based index.
func (f *File) NamedStates() ([]NamedState, error) {
	w, err := f.World()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(f.Problems))
	out := make([]NamedState, 0, len(f.Problems))
	for i, p := range f.Problems {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("problem%d", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidProblem, name)
		}
		seen[name] = struct{}{}

		dirt := make([]world.Position, len(p.Dirt))
		for j, c := range p.Dirt {
			dirt[j] = c.Position()
		}
		st, err := w.NewState(p.Start.Position(), dirt)
		if err != nil {
			return nil, fmt.Errorf("problem %s: %w", name, err)
		}
		out = append(out, NamedState{Name: name, Start: st})
	}
	return out, nil
}

// StrategyList parses the configured strategy names.
func (f *File) StrategyList() ([]search.Strategy, error) {
	out := make([]search.Strategy, 0, len(f.Strategies))
	for _, s := range f.Strategies {
		st, err := search.ParseStrategy(s)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// Validate checks everything a run depends on without running a search.
func (f *File) Validate() error {
	if _, err := f.NamedStates(); err != nil {
		return err
	}
	if _, err := f.StrategyList(); err != nil {
		return err
	}
	switch f.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported report format: %q", f.Report.Format)
	}
	if f.Report.MQTT.Enabled && f.Report.MQTT.Broker == "" {
		return errors.New("report.mqtt.broker is required when mqtt is enabled")
	}
	if f.Report.MQTT.Retries < 1 {
		return fmt.Errorf("invalid mqtt retries: %d", f.Report.MQTT.Retries)
	}
	if f.Report.MQTT.QoS > 2 {
		return fmt.Errorf("invalid mqtt qos: %d", f.Report.MQTT.QoS)
	}
	return nil
}
