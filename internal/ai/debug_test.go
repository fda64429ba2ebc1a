package ai

import (
	"sync"
	"testing"
)

func TestEnableDebugLogging(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	for _, enabled := range []bool{true, false, true} {
		EnableDebugLogging(enabled)
		if got := IsDebugEnabled(); got != enabled {
			t.Errorf("IsDebugEnabled() = %v, want %v", got, enabled)
		}
	}
}

func TestIsDebugEnabled_ConcurrentToggle(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 1000 {
				if i == 0 {
					EnableDebugLogging(j%2 == 0)
					continue
				}
				_ = IsDebugEnabled()
			}
		}()
	}
	wg.Wait()
}
