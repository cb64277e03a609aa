package dispatch_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"specgen/internal/features/dispatch"
)

func TestPrintUsage(t *testing.T) {
	t.Run("should render plain text when not writing to a terminal", func(t *testing.T) {
		var out bytes.Buffer
		dispatch.PrintUsage(&out, "specgen", dispatch.DefaultTable())

		assert.NotContains(t, out.String(), "\x1b[")
		assert.True(t, strings.HasPrefix(out.String(), "Usage: specgen <command>\n\nAvailable commands:\n"))
	})

	t.Run("should align descriptions", func(t *testing.T) {
		var out bytes.Buffer
		table := dispatch.Table{
			{Name: "dev", Script: "dev", Description: "Run dev"},
			{Name: "deploy:ec2", Script: "deploy:ec2", Description: "Deploy to EC2"},
		}
		dispatch.PrintUsage(&out, "specgen", table)

		assert.Contains(t, out.String(), "  dev        - Run dev\n")
		assert.Contains(t, out.String(), "  deploy:ec2 - Deploy to EC2\n")
	})
}
