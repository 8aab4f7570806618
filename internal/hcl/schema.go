package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a configuration file may carry.
type fileRoot struct {
	Engine    *engineBlock     `hcl:"engine,block"`
	Logging   *loggingBlock    `hcl:"logging,block"`
	StepTypes []*stepTypeBlock `hcl:"step_type,block"`
}

type engineBlock struct {
	Workers      *int           `hcl:"workers,optional"`
	RoundTimeout hcl.Expression `hcl:"round_timeout,optional"`
	MaxRounds    *int           `hcl:"max_rounds,optional"`
}

type loggingBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type stepTypeBlock struct {
	Name        string         `hcl:"name,label"`
	Facilitator *string        `hcl:"facilitator,optional"`
	Defaults    hcl.Expression `hcl:"defaults,optional"`
}
