package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// Component's result must support the chained level methods directly, the
// way the persistence and event packages call it.
func TestComponentChainsLevelMethods(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	Logger = zerolog.New(&buf)

	Component("kvstore").Warn().Str("key", "products").Msg("read failed")

	out := buf.String()
	assert.Contains(t, out, `"component":"kvstore"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"key":"products"`)
}

func TestComponentIsolatedPerName(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	Logger = zerolog.New(&buf)

	Component("cart").Info().Msg("one")
	Component("checkout").Info().Msg("two")

	out := buf.String()
	assert.Contains(t, out, `"component":"cart"`)
	assert.Contains(t, out, `"component":"checkout"`)
}
