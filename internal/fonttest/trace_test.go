package fonttest

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
)

func TestConcurrentTracing(t *testing.T) {
	teardown := QuickConfig(t, "font.index")
	defer teardown()
	//
	tr := tracing.Select("font.index")
	assert.Equal(t, tracing.LevelDebug, tr.GetTraceLevel())
	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				tr.Debugf("worker %d, message %d", w, i)
				tr.P("worker", w).Infof("100%% done with %d", i)
				tracing.Select("font.index").SetTraceLevel(tracing.LevelDebug)
			}
		}()
	}
	wg.Wait()
	tr.P("rate", "50%").Errorf("tracing has survived %d goroutines", 8)
}
