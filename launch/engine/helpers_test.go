package engine_test

import (
	"testing"
	"time"

	"github.com/moonforge-labs/launchpad/launch/types"
	"github.com/moonforge-labs/launchpad/testutil"
)

const testToken = testutil.TestToken

func newFixture(t testing.TB) *testutil.Fixture {
	return testutil.NewEngine(t, types.DefaultParams())
}

func ctxAt(height int64) types.Context {
	return testutil.Ctx(height)
}

func ctxAtTime(height int64, at time.Time) types.Context {
	return testutil.CtxAt(height, at)
}
