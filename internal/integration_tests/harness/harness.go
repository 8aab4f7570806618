// Package harness runs the whole application against pipeline and
// configuration files written to a temporary directory.
package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/plancreator/internal/app"
	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/hcl"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/testutil"
)

// PipelineFile is the file name Run treats as the pipeline. Every file under
// ConfigDir is loaded as configuration.
const (
	PipelineFile = "pipeline.yaml"
	ConfigDir    = "config"
)

// Node mirrors one entry of the written plan.
type Node struct {
	UUID                string         `json:"uuid"`
	Name                string         `json:"name"`
	Identifier          string         `json:"identifier"`
	StepType            string         `json:"stepType"`
	Group               string         `json:"group"`
	Facilitator         string         `json:"facilitator"`
	StepParameters      map[string]any `json:"stepParameters"`
	Advisers            []Adviser      `json:"advisers"`
	ChildNodeIDs        []string       `json:"childNodeIds"`
	SkipExpressionChain bool           `json:"skipExpressionChain"`
}

// Adviser mirrors one adviser of a written node.
type Adviser struct {
	Type       string `json:"type"`
	NextNodeID string `json:"nextNodeId"`
}

// Plan mirrors the written plan document.
type Plan struct {
	StartingNodeID string `json:"startingNodeId"`
	Nodes          []Node `json:"nodes"`
}

// ByIdentifier returns the first node with the given identifier.
func (p *Plan) ByIdentifier(identifier string) *Node {
	for i := range p.Nodes {
		if p.Nodes[i].Identifier == identifier {
			return &p.Nodes[i]
		}
	}
	return nil
}

// ByUUID returns the node with the given id.
func (p *Plan) ByUUID(uuid string) *Node {
	for i := range p.Nodes {
		if p.Nodes[i].UUID == uuid {
			return &p.Nodes[i]
		}
	}
	return nil
}

// Result holds the outcomes of an integration test run.
type Result struct {
	LogOutput string
	Output    string
	Plan      *Plan // nil unless the run succeeded
	Err       error
}

// Run writes files into a temporary directory, builds the app around them and
// runs it with a background context.
func Run(t *testing.T, files map[string]string, mutate func(*app.Config), creatorSet ...creator.PartialPlanCreator) *Result {
	t.Helper()
	return RunWithContext(context.Background(), t, files, mutate, creatorSet...)
}

// RunWithContext is Run with a caller-provided context.
func RunWithContext(ctx context.Context, t *testing.T, files map[string]string, mutate func(*app.Config), creatorSet ...creator.PartialPlanCreator) *Result {
	t.Helper()

	// 1. Lay the files out; relative names may contain subdirectories.
	tmpDir := t.TempDir()
	hasConfig := false
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		if strings.HasPrefix(filepath.ToSlash(name), ConfigDir+"/") {
			hasConfig = true
		}
	}

	// 2. Configure the app the way the CLI would.
	cfg := app.Config{
		PipelinePath: filepath.Join(tmpDir, PipelineFile),
		LogLevel:     "debug",
		LogFormat:    "text",
		Workers:      4,
	}
	if hasConfig {
		cfg.ConfigPaths = []string{filepath.Join(tmpDir, ConfigDir)}
	}
	if mutate != nil {
		mutate(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("PLANCREATOR_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	// 3. Build and run.
	result := &Result{}
	testApp, err := app.NewApp(out, logs, appConfig, hcl.NewLoader(), creatorSet...)
	if err == nil {
		err = testApp.Run(ctx)
	}
	result.Err = err
	result.LogOutput = logs.String()
	result.Output = out.String()

	if err == nil {
		var p Plan
		require.NoError(t, json.Unmarshal(out.Bytes(), &p), "the plan must be valid JSON")
		result.Plan = &p
	}
	return result
}

// NextStep returns the target of n's NEXT_STEP adviser, if any.
func NextStep(n *Node) string {
	for _, a := range n.Advisers {
		if a.Type == plan.AdviserNextStep {
			return a.NextNodeID
		}
	}
	return ""
}
