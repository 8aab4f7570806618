package cli_behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/plancreator/internal/app"
	"github.com/vk/plancreator/internal/engine"
	"github.com/vk/plancreator/internal/integration_tests/harness"
	"github.com/vk/plancreator/internal/testutil"
)

// TestCLI_FlagsOverrideConfigFile validates that a setting given on the
// command line wins over the same setting in a configuration file.
func TestCLI_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The file allows plenty of rounds; the flag allows too few.
	files := map[string]string{
		harness.PipelineFile: testutil.SamplePipeline,
		"config/engine.hcl": `
			engine {
				max_rounds = 50
			}
		`,
	}

	// --- Act ---
	result := harness.Run(t, files, func(c *app.Config) { c.MaxRounds = 2 })

	// --- Assert ---
	require.ErrorIs(t, result.Err, engine.ErrMaxRoundsExceeded)
	assert.Empty(t, result.Output, "nothing is written when creation aborts")
}

// TestCLI_ConfigFileSettingsApply validates that a file setting is used when
// no flag overrides it.
func TestCLI_ConfigFileSettingsApply(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		harness.PipelineFile: testutil.SamplePipeline,
		"config/engine.hcl":  `engine { max_rounds = 3 }`,
	}

	// --- Act ---
	result := harness.Run(t, files, nil)

	// --- Assert ---
	require.ErrorIs(t, result.Err, engine.ErrMaxRoundsExceeded)
	assert.Contains(t, result.Err.Error(), "limit is 3")
}
