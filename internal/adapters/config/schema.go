package config

// Masonfile represents the structure of the mason.yaml declaration file.
// Rules are a list, not a map: declaration order is meaningful and every
// dependency must be declared before its dependents.
type Masonfile struct {
	Version string    `yaml:"version"`
	Rules   []RuleDTO `yaml:"rules"`
}

// RuleDTO represents one build rule declaration.
type RuleDTO struct {
	Target   string            `yaml:"target"`
	Type     string            `yaml:"type"`
	Srcs     []string          `yaml:"srcs"`
	Deps     []string          `yaml:"deps"`
	Cmd      []string          `yaml:"cmd"`
	Env      map[string]string `yaml:"env"`
	Pipeline string            `yaml:"pipeline"`
	Tool     []string          `yaml:"tool"`
}
