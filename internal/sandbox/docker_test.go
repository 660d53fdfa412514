package sandbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"optimus-bench/internal/api"
	"optimus-bench/internal/config"
)

func TestRunJobRejectsUnmappedLanguage(t *testing.T) {
	cfg := config.LoadConfig()
	spec := api.JobSpec{Language: "cobol", SourceCode: "DISPLAY 'HI'."}

	_, err := RunJob(context.Background(), spec, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no runner image")
}
